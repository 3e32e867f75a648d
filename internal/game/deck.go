package game

import (
	"math/rand/v2"
	"slices"

	"github.com/aaronzipp/banker-and-robber/internal/models"
)

// Deck is the policy draw pile and its discard pile
type Deck struct {
	rng     *rand.Rand
	cards   []models.Policy
	discard []models.Policy
}

// NewDeck returns a shuffled 17-card deck
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset rebuilds and shuffles the full deck and empties the discard pile
func (d *Deck) Reset() {
	cards := make([]models.Policy, 0, DeckRobberPolicies+DeckBankerPolicies)
	for range DeckRobberPolicies {
		cards = append(cards, models.PolicyRobber)
	}
	for range DeckBankerPolicies {
		cards = append(cards, models.PolicyBanker)
	}
	d.cards = Shuffle(d.rng, cards)
	d.discard = nil
}

// Draw removes n cards from the top, first shuffling the discard pile back in
// when the draw pile alone is too small
func (d *Deck) Draw(n int) ([]models.Policy, error) {
	if err := d.ensure(n); err != nil {
		return nil, err
	}
	drawn := slices.Clone(d.cards[:n])
	d.cards = d.cards[n:]
	return drawn, nil
}

// Peek returns the top n cards without removing them. It reshuffles the same
// way Draw would so that the peeked cards are the next ones drawn
func (d *Deck) Peek(n int) ([]models.Policy, error) {
	if err := d.ensure(n); err != nil {
		return nil, err
	}
	return slices.Clone(d.cards[:n]), nil
}

// Discard puts cards on the discard pile
func (d *Deck) Discard(cards ...models.Policy) {
	d.discard = append(d.discard, cards...)
}

// Len is the number of cards in the draw pile
func (d *Deck) Len() int {
	return len(d.cards)
}

// DiscardLen is the number of cards in the discard pile
func (d *Deck) DiscardLen() int {
	return len(d.discard)
}

// NeedsReshuffle reports whether drawing n cards would reshuffle the discard pile
func (d *Deck) NeedsReshuffle(n int) bool {
	return len(d.cards) < n
}

func (d *Deck) ensure(n int) error {
	if len(d.cards) >= n {
		return nil
	}
	if len(d.cards)+len(d.discard) < n {
		return ErrDeckExhausted
	}
	merged := append(slices.Clone(d.cards), d.discard...)
	d.cards = Shuffle(d.rng, merged)
	d.discard = nil
	return nil
}
