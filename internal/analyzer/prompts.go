package analyzer

// System prompts name the persona and the exact JSON the model must return.
// Field names in these schemas are the contract the normalizers read.
const (
	biasSystemPrompt = `You are an AI ethics expert. Analyze the given text for potential bias, unfairness, or discriminatory language. You MUST respond with ONLY a valid JSON object in this exact format: {"isFair": boolean, "confidence": "Low/Medium/High", "reason": "string", "suggestions": ["string1", "string2"]}. Do not include any text before or after the JSON.`

	privacySystemPrompt = `You are a cybersecurity expert. Analyze the given text for sensitive personal information like emails, phone numbers, addresses, SSNs, credit cards, etc. You MUST respond with ONLY a valid JSON object in this exact format: {"riskLevel": "Low/Medium/High", "foundSensitive": [{"type": "Email", "count": 1}, {"type": "Phone", "count": 1}], "totalSensitive": 2, "recommendations": ["string1", "string2"]}. Use these exact type names: Email, Phone, SSN, CreditCard, Address, Name. Do not include any text before or after the JSON.`

	automationSystemPrompt = `You are a workforce automation expert. Analyze the given job title for automation risk. You MUST respond with ONLY a valid JSON object in this exact format: {"riskLevel": "Low/Medium/High", "riskScore": number, "reason": "string", "futureOutlook": "string", "recommendations": ["string1", "string2"]}. Do not include any text before or after the JSON.`

	moodSystemPrompt = `You are a mental health counselor. Analyze the given text for emotional tone and mood. You MUST respond with ONLY a valid JSON object in this exact format: {"moodCategory": "Positive/Negative/Neutral", "moodScore": number, "confidence": "Low/Medium/High", "analysis": "string", "tips": ["string1", "string2"]}. Do not include any text before or after the JSON.`
)

// User prompt formats. The caller's input is embedded verbatim.
const (
	biasUserFormat       = `Analyze this text for bias: "%s"`
	privacyUserFormat    = `Analyze this text for privacy risks: "%s"`
	automationUserFormat = `Analyze automation risk for this job: "%s"`
	moodUserFormat       = `Analyze the mood in this text: "%s"`
)

const connectionTestPrompt = "What is the meaning of life? Please respond in one sentence."

const apiErrorReason = "Unable to analyze due to API error. Please try again."
