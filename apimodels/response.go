package apimodels

import "time"

// BiasResult is the AI ethics bias check.
type BiasResult struct {
	IsFair      bool     `json:"isFair"`
	Confidence  string   `json:"confidence" enum:"Low,Medium,High"`
	Reason      string   `json:"reason"`
	Suggestions []string `json:"suggestions"`
}

// SensitiveFinding counts one kind of personal data found in the text.
type SensitiveFinding struct {
	Type  string  `json:"type" enum:"Email,Phone,SSN,CreditCard,Address,Name"`
	Count float64 `json:"count"`
}

// PrivacyResult is the privacy risk scan.
type PrivacyResult struct {
	RiskLevel       string             `json:"riskLevel" enum:"Low,Medium,High"`
	FoundSensitive  []SensitiveFinding `json:"foundSensitive"`
	TotalSensitive  float64            `json:"totalSensitive"`
	Recommendations []string           `json:"recommendations"`
}

// AutomationResult is the automation risk assessment for one job.
type AutomationResult struct {
	RiskLevel       string   `json:"riskLevel" enum:"Low,Medium,High"`
	RiskScore       float64  `json:"riskScore"`
	Reason          string   `json:"reason"`
	FutureOutlook   string   `json:"futureOutlook"`
	Recommendations []string `json:"recommendations"`
}

// MoodResult is the mood analysis. MoodScore is signed: negative values mean
// a negative mood.
type MoodResult struct {
	MoodCategory string   `json:"moodCategory" enum:"Positive,Negative,Neutral"`
	MoodScore    float64  `json:"moodScore"`
	Confidence   string   `json:"confidence" enum:"Low,Medium,High"`
	Analysis     string   `json:"analysis"`
	Tips         []string `json:"tips"`
}

type AnalysisResponse struct {
	// The normalized analysis result
	Result interface{} `json:"result"`

	// Job the automation analysis ran for
	Job *Job `json:"job,omitempty"`

	// Metadata about the analysis
	Metadata AnalysisMetadata `json:"metadata"`
}

type Job struct {
	Label      string `json:"label"`
	Icon       string `json:"icon,omitempty"`
	Category   string `json:"category"`
	Skills     string `json:"skills,omitempty"`
	Experience string `json:"experience,omitempty"`
}

type AnalysisMetadata struct {
	// Correlates the response with server logs
	ID string `json:"id"`

	Task string `json:"task"`

	// Time taken for analysis
	Duration string `json:"duration"`

	// False when the result is the fallback default
	Succeeded bool `json:"succeeded"`

	// auth, transport or recovery when Succeeded is false
	ErrorKind string `json:"errorKind,omitempty"`
}

type ConnectionTestResult struct {
	Success   bool      `json:"success"`
	Response  string    `json:"response,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
