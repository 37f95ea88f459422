package corpus

import "github.com/intentbot/intentbot-go/internal/model"

// defaultGroups 内置语料，按类别分组；每条语料都能被自身训练出的模型正确分类
var defaultGroups = []struct {
	category   model.Category
	utterances []string
}{
	{model.CategoryGreet, []string{
		"hello", "hello there", "hello assistant",
		"hi", "hi there", "hi assistant",
		"hey", "hey there", "hey assistant",
		"good morning", "good afternoon", "good evening",
		"greetings", "greetings assistant", "howdy", "howdy partner",
	}},
	{model.CategoryFarewell, []string{
		"bye", "bye bye", "goodbye", "goodbye assistant",
		"see you later", "see you soon", "farewell", "farewell friend",
		"exit", "exit now", "quit", "quit now",
		"catch you later", "i am leaving", "good night",
	}},
	{model.CategoryHome, []string{
		"turn on the light", "turn on the lights", "switch on the lamp", "lights on",
		"turn on the tv", "switch on the television",
		"turn off the light", "turn off the lights", "switch off the lamp", "lights off",
		"turn off the tv", "switch off the television",
		"power on the tv", "power off the tv", "dim the lights", "brighten the room",
	}},
	{model.CategoryStatusQuery, []string{
		"how are you", "how are you doing", "how are you today", "how is it going",
		"how is everything", "are you ok", "are you alright", "how do you feel",
		"everything fine", "all good",
	}},
	{model.CategoryGratitude, []string{
		"thanks", "thanks a lot", "thank you", "thank you very much",
		"many thanks", "much appreciated", "i appreciate it",
		"perfect", "perfect thanks", "great job",
		"awesome", "awesome thanks", "excellent", "excellent work",
	}},
	{model.CategoryInformation, []string{
		"what time is it", "tell me the time", "current time",
		"what is the date", "what day is today",
		"help", "help me", "show me the commands", "what can you do",
		"available commands", "i need help",
	}},
	{model.CategoryWeather, []string{
		"what is the weather like", "how is the weather", "will it rain",
		"will it rain tomorrow", "temperature outside", "weather today",
		"weather forecast", "will it be sunny", "is it cold outside",
	}},
}

// Default 返回内置语料的副本
func Default() []model.Example {
	examples := make([]model.Example, 0, 96)
	for _, g := range defaultGroups {
		for _, u := range g.utterances {
			examples = append(examples, model.Example{Utterance: u, Category: g.category})
		}
	}
	return examples
}
