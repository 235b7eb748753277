package summarizer

import (
	"fmt"
	"strings"
)

const (
	FailedChunkPlaceholder = "(Error summarizing this section.)"
	SectionHeader          = "SECTION-BY-SECTION SUMMARY (scores and page details):"

	chunkSystemPrompt = "You are an expert cognitive health assistant. You are helping to " +
		"summarize a patient's ReCOGnAIze cognitive performance report."

	fusionSystemPrompt = "You are an expert cognitive health assistant. Based on summaries " +
		"from a patient's ReCOGnAIze cognitive performance report, create an " +
		"overall explanation that is clear, concise, and patient friendly."
)

func chunkPrompt(chunk string, index, total int) string {
	n := index + 1
	return fmt.Sprintf("You are summarizing section %d of %d from a ReCOGnAIze cognitive performance report. ", n, total) +
		"Your goal is to shorten the wording so it fits into a small prompt, " +
		"BUT you must preserve the key quantitative and categorical details.\n\n" +
		"IMPORTANT INSTRUCTIONS (do all of these):\n" +
		"- Do NOT drop or approximate any explicit NUMERIC SCORES that appear in this section " +
		"(for example: values like '22', '98', '14', '22/30', 'Your Score', 'Average Score').\n" +
		"- Do NOT drop qualitative labels such as 'WEAK', 'STRONG', 'ADEQUATE', 'AVERAGE'. " +
		"Include them exactly as written.\n" +
		"- If multiple scores are shown, list them all.\n" +
		"- It is OK to compress repeated explanatory sentences as long as all scores and labels remain.\n\n" +
		"Write a concise summary in this structure (plain text, no JSON):\n" +
		"1) Domain & page context: which cognitive domain(s) this section is about, and if visible, the page number.\n" +
		"2) Scores: list ALL scores and labels exactly as shown in the text.\n" +
		"3) Meaning in plain language: 2-3 short sentences explaining what these scores mean.\n" +
		"4) Key recommendations: 3-5 short bullet points of concrete lifestyle or training steps mentioned or clearly implied.\n\n" +
		fmt.Sprintf("SECTION %d/%d:\n", n, total) + chunk
}

func fusionPrompt(summaries []string) string {
	return "Here are section summaries from the report. First, infer the patient's " +
		"key cognitive strengths and weaknesses (processing speed, executive " +
		"function, attention, working memory, overall risk). Then provide:\n" +
		"1) A short paragraph explaining what these results mean in plain language,\n" +
		"2) 4-6 specific, evidence-informed lifestyle and training recommendations " +
		"tailored to these results (exercise, diet, sleep, cognitive training, vascular health),\n" +
		"3) A brief note encouraging discussion with a healthcare provider.\n\n" +
		"SECTION SUMMARIES:\n" + joinSections(summaries)
}

func joinSections(summaries []string) string {
	parts := make([]string, len(summaries))
	for i, s := range summaries {
		parts[i] = fmt.Sprintf("Section %d summary:\n%s", i+1, s)
	}
	return strings.Join(parts, "\n\n")
}

// assemble keeps the per-section detail after the narrative so literal scores
// survive. Without a narrative only the header and sections remain.
func assemble(narrative string, summaries []string) string {
	if len(summaries) == 0 {
		return narrative
	}
	sections := SectionHeader + "\n" + strings.Join(summaries, "\n\n")
	if narrative == "" {
		return sections
	}
	return narrative + "\n\n" + sections
}
