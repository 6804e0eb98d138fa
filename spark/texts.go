package spark

// User-facing copy for the submission flow. The /start and /help templates
// live with the bot wiring; everything the state machine says is here.
const (
	textQuestionPrompt = "Let's ignite a spark. 🔥\n\n" +
		"What’s your question or hypothesis?\n\n" +
		"Note: Trepa isn’t a fortune-teller. Avoid asking us to *predict the future*. " +
		"Instead, focus on ideas, trends, or moments where public sentiment might be shifting."

	textDescriptionPrompt = "Great question! 📌\n\n" +
		"Now give us a bit more context — where’s this coming from? A tweet? A trend? A gut feeling?\n" +
		"Tell us what inspired the spark."

	textImagePrompt = "Thanks for the background! 🧠\n\n" +
		"Do you have an image or screenshot that captures the essence of this spark?\n\n" +
		"Drop the image link here (or upload a photo). If not, just type 'no'."

	textUseSendspark = "To submit a question, please use the /sendspark command."

	textUseSendsparkPhoto = "To submit a question with an image, please use the /sendspark command first."

	textUnexpectedImage = "I wasn't expecting an image at this point. Please follow the prompts."

	textCancelled = "No worries — your spark submission has been cancelled. 🔕\n\n" +
		"You can always light another one with /sendspark whenever inspiration strikes."

	textConfirmation = "🧠 Thanks! Your question has been submitted to Trepa HQ.\n\n" +
		"We’ll use it to spark community sentiment. " +
		"If it fits, it may show up on Trepa soon for others to weigh in.\n\n" +
		"Want to ask another one? Hit /sendspark anytime!"
)
