package responder

import (
	"regexp"
	"testing"
	"time"

	"github.com/intentbot/intentbot-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixedChooser 总是返回同一个下标
type fixedChooser int

func (f fixedChooser) IntN(int) int { return int(f) }

func newDispatcher(opts ...Option) *Dispatcher {
	return NewDispatcher(zap.NewNop(), opts...)
}

func TestGenerate_FixedReplySets(t *testing.T) {
	d := newDispatcher()
	categories := []model.Category{
		model.CategoryGreet,
		model.CategoryFarewell,
		model.CategoryStatusQuery,
		model.CategoryGratitude,
		model.CategoryWeather,
		model.CategoryUnknown,
		model.Category("not_a_category"),
	}

	for _, c := range categories {
		t.Run(string(c), func(t *testing.T) {
			set := Replies(c)
			require.GreaterOrEqual(t, len(set), 3)
			require.LessOrEqual(t, len(set), 5)
			for i := 0; i < 50; i++ {
				assert.Contains(t, set, d.Generate("anything at all", c))
			}
		})
	}
}

func TestGenerate_DeterministicChooser(t *testing.T) {
	d := newDispatcher(WithChooser(fixedChooser(2)))
	assert.Equal(t, replySets[model.CategoryGreet][2], d.Generate("hello", model.CategoryGreet))
	assert.Equal(t, fallbackReplies[2], d.Generate("???", model.CategoryUnknown))
}

func TestGenerate_ChooserOutOfRangeYieldsApology(t *testing.T) {
	d := newDispatcher(WithChooser(fixedChooser(99)))
	assert.Equal(t, Apology, d.Generate("hello", model.CategoryGreet))
}

func TestGenerate_Home(t *testing.T) {
	d := newDispatcher()
	tests := []struct {
		text string
		want string
	}{
		{"turn on the light", homeReplies[actionActivate][deviceLight]},
		{"switch on the lamp", homeReplies[actionActivate][deviceLight]},
		{"Turn On The TV", homeReplies[actionActivate][deviceTV]},
		{"power on the television", homeReplies[actionActivate][deviceTV]},
		{"turn on the fan", homeReplies[actionActivate][deviceGeneric]},
		{"turn off the lights", homeReplies[actionDeactivate][deviceLight]},
		{"switch off the telly", homeReplies[actionDeactivate][deviceTV]},
		{"shut off the heater", homeReplies[actionDeactivate][deviceGeneric]},
		{"lights off", homeReplies[actionDeactivate][deviceLight]},
		{"dim the lights", HomeNotRecognized},
		{"brighten the room", HomeNotRecognized},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Generate(tt.text, model.CategoryHome))
		})
	}
}

func TestGenerate_HomeActivateWinsOverDeactivate(t *testing.T) {
	d := newDispatcher()
	assert.Equal(t, "💡 Turning on the lights.",
		d.Generate("turn on and turn off the light", model.CategoryHome))
	assert.Equal(t, "💡 Turning on the lights.",
		d.Generate("turn off and turn on the light", model.CategoryHome))
}

func TestGenerate_HomeLightWinsOverTV(t *testing.T) {
	d := newDispatcher()
	assert.Equal(t, homeReplies[actionActivate][deviceLight],
		d.Generate("turn on the tv light", model.CategoryHome))
}

var (
	timePattern = regexp.MustCompile(`\b\d{2}:\d{2}:\d{2}\b`)
	datePattern = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)
)

func TestGenerate_InformationTime(t *testing.T) {
	t.Run("fixed clock", func(t *testing.T) {
		at := time.Date(2024, time.March, 5, 7, 8, 9, 0, time.UTC)
		d := newDispatcher(WithClock(func() time.Time { return at }))
		assert.Equal(t, "🕐 It is 07:08:09 on 05/03/2024",
			d.Generate("what time is it", model.CategoryInformation))
		assert.Equal(t, "🕐 It is 07:08:09 on 05/03/2024",
			d.Generate("what is the date", model.CategoryInformation))
	})

	t.Run("wall clock twice", func(t *testing.T) {
		d := newDispatcher()
		for i := 0; i < 2; i++ {
			reply := d.Generate("tell me the time", model.CategoryInformation)
			assert.Regexp(t, timePattern, reply)
			assert.Regexp(t, datePattern, reply)
		}
	})
}

func TestGenerate_InformationHelpAndFallback(t *testing.T) {
	d := newDispatcher()
	assert.Equal(t, HelpText, d.Generate("help", model.CategoryInformation))
	assert.Equal(t, HelpText, d.Generate("show me the commands", model.CategoryInformation))
	assert.Equal(t, HelpText, d.Generate("What can you do", model.CategoryInformation))
	assert.Equal(t, InfoUnavailable, d.Generate("tell me a secret", model.CategoryInformation))
}

func TestGenerate_TimeBeatsHelp(t *testing.T) {
	at := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	d := newDispatcher(WithClock(func() time.Time { return at }))
	assert.Equal(t, "🕐 It is 00:00:00 on 01/01/2024",
		d.Generate("help me with the time", model.CategoryInformation))
}

func TestHelpTextListsEveryCategory(t *testing.T) {
	for _, label := range []string{"Greetings", "Farewells", "Home", "Status", "Information", "Gratitude", "Weather"} {
		assert.Contains(t, HelpText, label)
	}
}

func TestReplies(t *testing.T) {
	assert.Nil(t, Replies(model.CategoryHome))
	assert.Nil(t, Replies(model.CategoryInformation))
	assert.Equal(t, fallbackReplies, Replies(model.CategoryUnknown))

	set := Replies(model.CategoryGreet)
	set[0] = "mutated"
	assert.NotEqual(t, "mutated", Replies(model.CategoryGreet)[0])
}

func TestMatchFirst(t *testing.T) {
	rules := []keywordRule[string]{
		{"first", []string{"alpha", "beta"}},
		{"second", []string{"beta", "gamma"}},
	}
	tag, ok := matchFirst(rules, "beta gamma")
	assert.True(t, ok)
	assert.Equal(t, "first", tag)

	tag, ok = matchFirst(rules, "gamma")
	assert.True(t, ok)
	assert.Equal(t, "second", tag)

	_, ok = matchFirst(rules, "delta")
	assert.False(t, ok)
}
