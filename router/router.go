// Package router classifies user utterances. An utterance either names a
// destination and a date (a travel guide request) or is a single query for
// one agent, chosen by keyword when the general agent is active.
package router

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultGeneral is the name of the general purpose agent.
const DefaultGeneral = "Assistant"

// TravelPattern matches phrases like "I want to go to Paris on July 4th".
// Group 1 is the location, group 2 the date.
var TravelPattern = regexp.MustCompile(`(?i)(?:i want to|planning to|going to|travel to|visit) (?:go to|go in|visit) ([a-zA-Z\s]+) (?:on|at|in) ([a-zA-Z0-9\s,]+)`)

// Intent is the result of classifying an utterance. It is either a
// SingleQuery or a TravelGuide.
type Intent interface {
	isIntent()
}

// SingleQuery sends the utterance to one agent.
type SingleQuery struct {
	Agent string
}

// TravelGuide requests the multi-agent travel guide workflow.
type TravelGuide struct {
	Location string
	Date     string
}

func (SingleQuery) isIntent() {}
func (TravelGuide) isIntent() {}

// MatchTravel extracts location and date from a travel utterance.
func MatchTravel(text string) (TravelGuide, bool) {
	m := TravelPattern.FindStringSubmatch(text)
	if m == nil {
		return TravelGuide{}, false
	}
	return TravelGuide{
		Location: strings.TrimSpace(m[1]),
		Date:     strings.TrimSpace(m[2]),
	}, true
}

// Category maps a keyword set to the agent that handles it.
type Category struct {
	Agent    string
	Keywords []string
}

// longestPrefix returns the length of the longest keyword word starts
// with, or 0 when none does.
func (c Category) longestPrefix(word string) int {
	best := 0
	for _, kw := range c.Keywords {
		if len(kw) > best && strings.HasPrefix(word, kw) {
			best = len(kw)
		}
	}
	return best
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// DefaultCategories returns the keyword categories in priority order.
func DefaultCategories() []Category {
	return []Category{
		{Agent: "WeatherExpert", Keywords: []string{"weather", "temperature", "forecast", "rain", "sunny", "climate", "humid", "cold", "hot"}},
		{Agent: "HotelExpert", Keywords: []string{"hotel", "motel", "accommodation", "stay", "room", "suite", "lodge", "resort"}},
		{Agent: "RestaurantExpert", Keywords: []string{"restaurant", "food", "eat", "dining", "cuisine", "meal", "breakfast", "lunch", "dinner"}},
		{Agent: "AttractionExpert", Keywords: []string{"attraction", "visit", "sightseeing", "tour", "museum", "landmark", "monument", "park", "gallery"}},
	}
}

// Router decides which Intent an utterance carries.
type Router struct {
	General    string
	Categories []Category
}

// New returns a Router with the default categories.
func New(optFns ...func(r *Router)) *Router {
	r := &Router{
		General:    DefaultGeneral,
		Categories: DefaultCategories(),
	}
	for _, fn := range optFns {
		fn(r)
	}
	return r
}

// Classify returns the intent of text given the currently selected agent.
// Travel requests win over everything else; keyword routing only applies
// while the general agent is selected.
func (r *Router) Classify(text, current string) Intent {
	if tg, ok := MatchTravel(text); ok {
		return tg
	}
	if current == r.General {
		if agent, ok := r.Route(text); ok {
			return SingleQuery{Agent: agent}
		}
	}
	return SingleQuery{Agent: current}
}

// Route returns the agent for text. Each word is claimed by the category
// holding the longest keyword the word starts with, so "hotels" belongs to
// "hotel" and not to "hot". Among the claimed categories the earliest wins.
func (r *Router) Route(text string) (string, bool) {
	winner := -1
	for _, word := range words(text) {
		best, bestLen := -1, 0
		for i, c := range r.Categories {
			if n := c.longestPrefix(word); n > bestLen {
				best, bestLen = i, n
			}
		}
		if best >= 0 && (winner < 0 || best < winner) {
			winner = best
		}
	}
	if winner < 0 {
		return "", false
	}
	return r.Categories[winner].Agent, true
}

// ParseOverride recognizes "@Agent rest of query". ok is false when text
// does not start with '@'. A bare "@" yields an empty agent name.
func ParseOverride(text string) (agent, rest string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "@") {
		return "", "", false
	}
	agent, rest, _ = strings.Cut(text[1:], " ")
	return agent, strings.TrimSpace(rest), true
}
