package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchTravel(t *testing.T) {
	cases := []struct {
		in       string
		ok       bool
		location string
		date     string
	}{
		{"I want to go to Paris on July 4th", true, "Paris", "July 4th"},
		{"I'm planning to visit Rome on next Friday", true, "Rome", "next Friday"},
		{"i want to go to new york in December 2025", true, "new york", "December 2025"},
		{"going to go in Tokyo at spring, 2026", true, "Tokyo", "spring, 2026"},
		{"What's the weather like?", false, "", ""},
		{"I want to go to Paris", false, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			tg, ok := MatchTravel(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.location, tg.Location)
			assert.Equal(t, tc.date, tg.Date)
		})
	}
}

func TestRouter_Classify(t *testing.T) {
	r := New()

	cases := []struct {
		in      string
		current string
		want    Intent
	}{
		{"I want to go to Paris on July 4th", "Assistant", TravelGuide{Location: "Paris", Date: "July 4th"}},
		{"I want to go to Paris on July 4th", "HotelExpert", TravelGuide{Location: "Paris", Date: "July 4th"}},
		{"Will it rain tomorrow?", "Assistant", SingleQuery{Agent: "WeatherExpert"}},
		{"Find me a HOTEL", "Assistant", SingleQuery{Agent: "HotelExpert"}},
		{"What hotels are good?", "Assistant", SingleQuery{Agent: "HotelExpert"}},
		{"Is it rainy in Oslo?", "Assistant", SingleQuery{Agent: "WeatherExpert"}},
		{"Where should I eat?", "Assistant", SingleQuery{Agent: "RestaurantExpert"}},
		{"Which museum is best?", "Assistant", SingleQuery{Agent: "AttractionExpert"}},
		{"What is the humidity in Rome?", "Assistant", SingleQuery{Agent: "WeatherExpert"}},
		{"Is it the hottest month?", "Assistant", SingleQuery{Agent: "WeatherExpert"}},
		{"Will it get colder tonight?", "Assistant", SingleQuery{Agent: "WeatherExpert"}},
		{"Any good eateries nearby?", "Assistant", SingleQuery{Agent: "RestaurantExpert"}},
		{"Hotels near the station", "Assistant", SingleQuery{Agent: "HotelExpert"}},
		{"Tell me a joke", "Assistant", SingleQuery{Agent: "Assistant"}},
		{"Will it rain tomorrow?", "HotelExpert", SingleQuery{Agent: "HotelExpert"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, r.Classify(tc.in, tc.current), tc.in)
	}
}

func TestRouter_TieBreakOrder(t *testing.T) {
	r := New()

	agent, ok := r.Route("hot food and a hotel room near the museum")
	assert.True(t, ok)
	assert.Equal(t, "WeatherExpert", agent, "weather keywords are checked first")

	agent, ok = r.Route("a hotel with a good restaurant")
	assert.True(t, ok)
	assert.Equal(t, "HotelExpert", agent)

	_, ok = r.Route("hello there")
	assert.False(t, ok)

	_, ok = r.Route("wheat and shortbread")
	assert.False(t, ok, "keywords must start the word")

	agent, ok = r.Route("any hotels with a pool?")
	assert.True(t, ok)
	assert.Equal(t, "HotelExpert", agent, "the longest keyword claims the word")
}

func TestRouter_CustomCategories(t *testing.T) {
	r := New(func(r *Router) {
		r.General = "Concierge"
		r.Categories = []Category{{Agent: "TrainExpert", Keywords: []string{"train"}}}
	})
	assert.Equal(t, SingleQuery{Agent: "TrainExpert"}, r.Classify("next train?", "Concierge"))
	assert.Equal(t, SingleQuery{Agent: "Assistant"}, r.Classify("next train?", "Assistant"))
}

func TestParseOverride(t *testing.T) {
	agent, rest, ok := ParseOverride("@WeatherExpert how warm is Lisbon?")
	assert.True(t, ok)
	assert.Equal(t, "WeatherExpert", agent)
	assert.Equal(t, "how warm is Lisbon?", rest)

	agent, rest, ok = ParseOverride("  @HotelExpert")
	assert.True(t, ok)
	assert.Equal(t, "HotelExpert", agent)
	assert.Empty(t, rest)

	agent, rest, ok = ParseOverride("@ nothing")
	assert.True(t, ok, "a bare @ still counts as an override")
	assert.Empty(t, agent)
	assert.Equal(t, "nothing", rest)

	agent, _, ok = ParseOverride("@")
	assert.True(t, ok)
	assert.Empty(t, agent)

	_, _, ok = ParseOverride("hello @HotelExpert")
	assert.False(t, ok)
}
