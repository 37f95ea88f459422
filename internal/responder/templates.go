package responder

import "github.com/intentbot/intentbot-go/internal/model"

// 固定回复
const (
	Apology           = "Sorry, something went wrong while processing your request. 😔"
	InfoUnavailable   = "ℹ️ Information not available. Try 'help' to see the available commands."
	HomeNotRecognized = "Home command not recognized. 🏠 Try 'turn on/off the lights' or 'turn on/off the tv'."

	// TimeFormat 与 DateFormat 分别对应 HH:MM:SS 与 DD/MM/YYYY
	TimeFormat = "15:04:05"
	DateFormat = "02/01/2006"
)

// HelpText 列出所有类别的示例命令
const HelpText = `📋 *Available commands:*

🙋 *Greetings:* 'hello', 'good morning', 'good afternoon'
👋 *Farewells:* 'goodbye', 'see you later', 'exit'
🏠 *Home:* 'turn on/off the lights', 'turn on/off the tv'
💬 *Status:* 'how are you', 'how is it going'
ℹ️ *Information:* 'what time is it', 'help'
🙏 *Gratitude:* 'thank you', 'perfect'
🌤️ *Weather:* 'how is the weather', 'will it rain'

Try any of these commands! 🚀`

var homeReplies = map[homeAction]map[homeDevice]string{
	actionActivate: {
		deviceLight:   "💡 Turning on the lights.",
		deviceTV:      "📺 Turning on the TV.",
		deviceGeneric: "💡 Turning on the device...",
	},
	actionDeactivate: {
		deviceLight:   "💡 Turning off the lights.",
		deviceTV:      "📺 Turning off the TV.",
		deviceGeneric: "💡 Turning off the device...",
	},
}

var replySets = map[model.Category][]string{
	model.CategoryGreet: {
		"Hello! 🤖 I'm your virtual assistant, how can I help you?",
		"Good day! ☀️ I'm here to assist you.",
		"Hi! 👋 What can I do for you?",
		"Greetings! 🙋 What do you need?",
		"Hello! 😊 How can I help you today?",
	},
	model.CategoryFarewell: {
		"Goodbye! 👋 See you later.",
		"See you! 😊 Have a nice day.",
		"Until next time! 🙂 It was a pleasure to help.",
		"Bye! 👋 Come back whenever you need help.",
		"Take care! 😎 All the best.",
	},
	model.CategoryStatusQuery: {
		"I'm doing great, thanks for asking. 😊 How about you?",
		"Everything is fine over here. ✅ How can I help you?",
		"Very well and ready to help. 🚀 What do you need?",
		"Excellent, running at 100%. 💯 How can I assist you?",
		"Great! 🎉 I'm here for whatever you need.",
	},
	model.CategoryGratitude: {
		"You're welcome! 😊 Always a pleasure to help.",
		"No problem! 👍 That's what I'm here for.",
		"My pleasure! 🙂 Do you need anything else?",
		"Anytime! 😄 I'm here whenever you need me.",
		"Perfect! 🎯 Glad I could help.",
	},
	model.CategoryWeather: {
		"Sorry, I don't have access to real-time weather data. 🌤️ Please check a weather app.",
		"For up-to-date weather information, check the forecast in your favourite app. 📱",
		"I can't reach weather data right now. ⛅ Is there anything else I can help with?",
	},
}

var fallbackReplies = []string{
	"I don't understand that command. 🤔 Try something like: 'hello', 'turn on the lights', 'help', 'goodbye'.",
	"Command not recognized. ❓ Some examples: 'how are you', 'turn off the light', 'what can you do'.",
	"I don't follow. 😅 Try: 'good morning', 'turn on the tv', 'thank you', 'exit'.",
}

// Replies 返回类别对应的固定回复集合（副本）。
// home 与 information 由规则表生成回复，返回 nil；unknown 及未知类别返回兜底建议。
func Replies(category model.Category) []string {
	if category == model.CategoryHome || category == model.CategoryInformation {
		return nil
	}
	set, ok := replySets[category]
	if !ok {
		set = fallbackReplies
	}
	out := make([]string, len(set))
	copy(out, set)
	return out
}
