package analyzer

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/sozercan/techtalk-hub/apimodels"
	"github.com/sozercan/techtalk-hub/internal/jobs"
)

var biasAdapter = adapter[apimodels.BiasResult]{
	task:         TaskBias,
	systemPrompt: biasSystemPrompt,
	userFormat:   biasUserFormat,
	fallback:     BiasFallback,
	normalize: func(obj gjson.Result) apimodels.BiasResult {
		def := BiasFallback()
		return apimodels.BiasResult{
			IsFair:      boolField(obj, "isFair", def.IsFair),
			Confidence:  stringField(obj, "confidence", def.Confidence),
			Reason:      stringField(obj, "reason", def.Reason),
			Suggestions: stringsField(obj, "suggestions", def.Suggestions),
		}
	},
}

var privacyAdapter = adapter[apimodels.PrivacyResult]{
	task:         TaskPrivacy,
	systemPrompt: privacySystemPrompt,
	userFormat:   privacyUserFormat,
	fallback:     PrivacyFallback,
	normalize: func(obj gjson.Result) apimodels.PrivacyResult {
		def := PrivacyFallback()
		return apimodels.PrivacyResult{
			RiskLevel:       stringField(obj, "riskLevel", def.RiskLevel),
			FoundSensitive:  findingsField(obj, "foundSensitive", def.FoundSensitive),
			TotalSensitive:  numberField(obj, "totalSensitive", def.TotalSensitive),
			Recommendations: stringsField(obj, "recommendations", []string{"No specific recommendations available."}),
		}
	},
}

var automationAdapter = adapter[apimodels.AutomationResult]{
	task:         TaskAutomation,
	systemPrompt: automationSystemPrompt,
	userFormat:   automationUserFormat,
	fallback:     AutomationFallback,
	normalize: func(obj gjson.Result) apimodels.AutomationResult {
		def := AutomationFallback()
		return apimodels.AutomationResult{
			RiskLevel:       stringField(obj, "riskLevel", def.RiskLevel),
			RiskScore:       numberField(obj, "riskScore", def.RiskScore),
			Reason:          stringField(obj, "reason", def.Reason),
			FutureOutlook:   stringField(obj, "futureOutlook", def.FutureOutlook),
			Recommendations: stringsField(obj, "recommendations", def.Recommendations),
		}
	},
}

var moodAdapter = adapter[apimodels.MoodResult]{
	task:         TaskMood,
	systemPrompt: moodSystemPrompt,
	userFormat:   moodUserFormat,
	fallback:     MoodFallback,
	normalize: func(obj gjson.Result) apimodels.MoodResult {
		def := MoodFallback()
		return apimodels.MoodResult{
			MoodCategory: stringField(obj, "moodCategory", def.MoodCategory),
			MoodScore:    numberField(obj, "moodScore", def.MoodScore),
			Confidence:   stringField(obj, "confidence", def.Confidence),
			Analysis:     stringField(obj, "analysis", def.Analysis),
			Tips:         stringsField(obj, "tips", def.Tips),
		}
	},
}

// AnalyzeBias checks text for biased or discriminatory language.
func (a *Analyzer) AnalyzeBias(ctx context.Context, text string) (apimodels.BiasResult, Outcome) {
	return analyze(ctx, a, biasAdapter, text)
}

// AnalyzePrivacyRisk scans text for personal data.
func (a *Analyzer) AnalyzePrivacyRisk(ctx context.Context, text string) (apimodels.PrivacyResult, Outcome) {
	return analyze(ctx, a, privacyAdapter, text)
}

// AnalyzeAutomationRisk rates how exposed a job is to automation.
func (a *Analyzer) AnalyzeAutomationRisk(ctx context.Context, job jobs.Descriptor) (apimodels.AutomationResult, Outcome) {
	return analyze(ctx, a, automationAdapter, job.String())
}

// AnalyzeMood reads the emotional tone of text.
func (a *Analyzer) AnalyzeMood(ctx context.Context, text string) (apimodels.MoodResult, Outcome) {
	return analyze(ctx, a, moodAdapter, text)
}

func BiasFallback() apimodels.BiasResult {
	return apimodels.BiasResult{
		IsFair:      true,
		Confidence:  "Low",
		Reason:      apiErrorReason,
		Suggestions: []string{"Consider reviewing the text manually for potential bias."},
	}
}

func PrivacyFallback() apimodels.PrivacyResult {
	return apimodels.PrivacyResult{
		RiskLevel:       "Low",
		FoundSensitive:  []apimodels.SensitiveFinding{},
		TotalSensitive:  0,
		Recommendations: []string{apiErrorReason},
	}
}

func AutomationFallback() apimodels.AutomationResult {
	return apimodels.AutomationResult{
		RiskLevel:       "Medium",
		RiskScore:       50,
		Reason:          apiErrorReason,
		FutureOutlook:   "Consider upskilling in areas that complement automation.",
		Recommendations: []string{"Focus on skills that are difficult to automate."},
	}
}

func MoodFallback() apimodels.MoodResult {
	return apimodels.MoodResult{
		MoodCategory: "Neutral",
		MoodScore:    0,
		Confidence:   "Low",
		Analysis:     apiErrorReason,
		Tips:         []string{"Consider taking a break and engaging in self-care activities."},
	}
}
