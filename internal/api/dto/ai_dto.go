package dto

// ChatRequest payload for the advisor chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// AdviceRequest payload for career advice.
type AdviceRequest struct {
	Question string `json:"question"`
}

// ResumeAnalysisRequest payload.
type ResumeAnalysisRequest struct {
	ResumeText string `json:"resumeText"`
}

// CoverLetterRequest payload.
type CoverLetterRequest struct {
	JobDescription string `json:"jobDescription"`
	UserProfile    string `json:"userProfile"`
}
