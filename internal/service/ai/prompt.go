package ai

// Prompts for the two-step insights chain. Both are rendered with
// schema.FString, so literal braces must not appear in them.
const (
	rephraseSystemPrompt = `You rewrite questions about flight booking data.
Turn the user's message into one clear, self-contained question.
Keep every filter, date, route, airline and number the user mentioned.
Do not answer the question. Reply with the rewritten question only.`

	answerSystemPrompt = `You answer questions about flight booking data.
Try to work out how the question maps onto the booking records, then answer it directly.
Some questions cannot be answered from the existing columns; derive what you need from the question first and then answer.
If the data needed to answer is not available to you, say so plainly instead of guessing.
Keep the answer short and factual.`
)
