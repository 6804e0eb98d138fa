package bot

// Command copy. The welcome template takes the sender's first name.
const (
	welcomeTemplate = "Hey %s, welcome to Trepa Bot! ⚡️\n\n" +
		"Trepa is the world's first sentiment prediction platform powered by *prediction pools*, not markets.\n\n " +
		"Got a question burning in your head? Use /sendspark to submit a *spark* — our experts will decode the collective signal behind it.\n\n" +
		"Let’s make your curiosity count. ✨"

	helpText = "🛠 *Need help?* Here's how to use Trepa Bot:\n\n" +
		"• /start – Introduction to Trepa and what this bot can do\n" +
		"• /sendspark – Submit a *spark* (your thought-provoking question)\n" +
		"• /cancel – Stop the current spark submission\n" +
		"• /help – See this guide again\n\n" +
		"*What’s a spark?*\n" +
		"It’s a signal you send to Trepa’s prediction pool — a hypothesis, a trend, a social whisper. " +
		"We help distill sentiment from it and surface insights before they go mainstream.\n\n" +
		"When you use /sendspark, I’ll ask:\n" +
		"1. Your question\n" +
		"2. Some background/context\n" +
		"3. (Optional) An image or link that captures the vibe\n\n" +
		"Let’s turn collective sentiment into superpowers. 🔮"
)
