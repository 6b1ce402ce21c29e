package analysis

// Prompt versions are pinned so result semantics stay stable across
// deployments. Bump the suffix when the expected JSON shape changes.

const hairPromptV1 = `You are a trichology assistant. Analyze the attached scalp photograph.
Respond with ONLY a JSON object, no markdown fences and no surrounding prose, shaped exactly like:
{
  "hair_count_estimate": "<rough density estimate as text>",
  "baldness_zones": ["<affected zone>", ...],
  "risk_3_years": {"level": "<low|medium|high>", "confidence": <0..1>},
  "risk_5_years": {"level": "<low|medium|high>", "confidence": <0..1>},
  "risk_10_years": {"level": "<low|medium|high>", "confidence": <0..1>},
  "recommendations": ["<actionable recommendation>", ...],
  "confidence_score": <0..1>
}`

const reportPromptV1 = `You are a clinical assistant. Analyze the following medical report text.
Respond with ONLY a JSON object, no markdown fences and no surrounding prose, shaped exactly like:
{
  "main_findings": ["<finding>", ...],
  "recommendations": ["<actionable recommendation>", ...],
  "follow_up": ["<suggested follow-up>", ...],
  "summary": "<short plain-language summary>",
  "confidence_score": <0..1>
}

Report text:
`

func promptFor(kind Kind) string {
	if kind == KindHair {
		return hairPromptV1
	}
	return reportPromptV1
}
