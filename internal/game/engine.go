package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/twentyone/internal/deck"
	"github.com/lox/twentyone/internal/roundid"
)

// EngineOption configures an Engine during creation.
type EngineOption func(*Engine)

// WithDeckFactory replaces the shuffled deck each round is dealt from.
// Tests use it to stack the deck.
func WithDeckFactory(f func() *deck.Deck) EngineOption {
	return func(e *Engine) { e.newDeck = f }
}

// WithEventBus publishes round events to bus.
func WithEventBus(bus EventBus) EngineOption {
	return func(e *Engine) { e.bus = bus }
}

// WithPacer inserts the dealer's cosmetic pauses.
func WithPacer(p *Pacer) EngineOption {
	return func(e *Engine) { e.pacer = p }
}

// WithDefaultAgent sets the agent used for players missing from the agents
// map passed to PlayRound.
func WithDefaultAgent(a Agent) EngineOption {
	return func(e *Engine) { e.defaultAgent = a }
}

// Engine plays rounds of blackjack. Each round owns a fresh deck and its
// own hands; the only state that survives a round is the players' chips.
type Engine struct {
	rng          *rand.Rand
	logger       *log.Logger
	newDeck      func() *deck.Deck
	bus          EventBus
	pacer        *Pacer
	defaultAgent Agent
	ids          *roundid.Generator
	rounds       int
}

// NewEngine creates an engine. The RNG is required to make randomness
// explicit: it shuffles every deck and names every round.
func NewEngine(rng *rand.Rand, logger *log.Logger, opts ...EngineOption) *Engine {
	if rng == nil {
		panic("rng is required for engine creation")
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		rng:          rng,
		logger:       logger,
		bus:          NewEventBus(),
		defaultAgent: NewAutoAgent(nil),
		ids:          roundid.NewGenerator(rng),
	}
	e.newDeck = func() *deck.Deck { return deck.NewShuffledDeck(e.rng) }

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandResult is a settled hand.
type HandResult struct {
	Hand   HandView
	Won    bool
	Net    int
	Player *Player
}

// Winnings is a player's net chip change over all of their hands.
type Winnings struct {
	Player *Player
	Net    int
}

// RoundResult contains the results of a completed round
type RoundResult struct {
	ID              string
	Number          int
	Hands           []HandResult
	Dealer          []deck.Card
	DealerScore     Score
	DealerBlackjack bool
	Winnings        []Winnings
}

// round is the working state of one PlayRound call.
type round struct {
	*Engine
	ctx     context.Context
	id      string
	number  int
	logger  *log.Logger
	deck    *deck.Deck
	players []*Player
	agents  map[string]Agent
	hands   []*Hand
	dealer  []deck.Card
}

// PlayRound deals and settles one round for players, in seat order. Agents
// are looked up by player name, falling back to the default agent.
//
// User mistakes are retried by the agents. Any error returned here is either
// the context ending, a human leaving (ErrEndOfInput), or a broken invariant;
// in every case the round is abandoned.
func (e *Engine) PlayRound(ctx context.Context, players []*Player, agents map[string]Agent) (*RoundResult, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}

	e.rounds++
	r := &round{
		Engine:  e,
		ctx:     ctx,
		id:      e.ids.Next(),
		number:  e.rounds,
		deck:    e.newDeck(),
		players: players,
		agents:  agents,
	}
	r.logger = e.logger.With("round", r.id)

	startChips := totalChips(players)
	r.logger.Debug("Starting round", "number", r.number, "players", len(players), "chips", startChips)

	result, err := r.play()
	if err != nil {
		r.logger.Error("Round abandoned", "error", err)
		return nil, fmt.Errorf("round %d: %w", r.number, err)
	}

	if err := verifyChipConservation(startChips, players, result); err != nil {
		r.logger.Error("Chip conservation failed", "error", err)
		return nil, err
	}

	r.logger.Info("Round complete",
		"number", r.number,
		"dealer", result.DealerScore,
		"hands", len(result.Hands))
	e.bus.Publish(RoundEndEvent{stamp: now(), Result: result})
	return result, nil
}

func (r *round) play() (*RoundResult, error) {
	if err := r.dealInitial(); err != nil {
		return nil, err
	}
	if err := r.takeBets(); err != nil {
		return nil, err
	}
	if err := r.dealSecond(); err != nil {
		return nil, err
	}

	if ScoreCards(r.dealer).IsBlackjack() {
		r.logger.Info("Dealer has blackjack")
		r.bus.Publish(DealerBlackjackEvent{stamp: now(), RoundID: r.id, Cards: r.dealerCards()})
		return r.settle(), nil
	}

	if err := r.playHands(); err != nil {
		return nil, err
	}
	if err := r.playDealer(); err != nil {
		return nil, err
	}
	if err := r.pacer.Pause(r.ctx, r.pacer.Pacing().Settle, "settle"); err != nil {
		return nil, err
	}
	return r.settle(), nil
}

func (r *round) deal() (deck.Card, error) {
	card, ok := r.deck.Deal()
	if !ok {
		return deck.Card{}, ErrDeckExhausted
	}
	return card, nil
}

func (r *round) agentFor(p *Player) Agent {
	if a, ok := r.agents[p.Name]; ok && a != nil {
		return a
	}
	return r.defaultAgent
}

// dealInitial gives every hand, then the dealer, one card.
func (r *round) dealInitial() error {
	r.hands = make([]*Hand, 0, len(r.players))
	for _, p := range r.players {
		if p.Chips < MinimumBet {
			return fmt.Errorf("%w: %s", ErrPlayerBroke, p.Name)
		}
		card, err := r.deal()
		if err != nil {
			return err
		}
		r.hands = append(r.hands, NewHand(p, card))
	}

	card, err := r.deal()
	if err != nil {
		return err
	}
	r.dealer = []deck.Card{card}

	r.bus.Publish(RoundStartEvent{
		stamp:   now(),
		RoundID: r.id,
		Number:  r.number,
		Hands:   r.views(),
		Upcard:  r.dealer[0],
	})
	return nil
}

// takeBets collects one wager per hand in seat order.
func (r *round) takeBets() error {
	for i, h := range r.hands {
		req := BetRequest{
			Hand:     h.View(),
			Upcard:   r.dealer[0],
			Minimum:  MinimumBet,
			Maximum:  h.Owner.Chips,
			Validate: func(amount int) error { return ValidateBet(h.Owner, amount, MinimumBet) },
		}

		r.bus.Publish(DecisionRequiredEvent{stamp: now(), RoundID: r.id, Index: i, Decision: DecisionBet, Hand: req.Hand})
		amount, err := r.agentFor(h.Owner).Bet(r.ctx, req)
		if err != nil {
			return fmt.Errorf("bet for %s: %w", h.Owner.Name, err)
		}

		if err := h.PlaceBet(amount, MinimumBet); err != nil {
			r.logger.Error("Invalid bet from agent, using minimum", "player", h.Owner.Name, "amount", amount, "error", err)
			amount = MinimumBet
			if err := h.PlaceBet(amount, MinimumBet); err != nil {
				return fmt.Errorf("fallback bet for %s: %w", h.Owner.Name, err)
			}
		}

		r.logger.Debug("Bet placed", "player", h.Owner.Name, "wager", amount, "chips", h.Owner.Chips)
		r.bus.Publish(BetPlacedEvent{stamp: now(), RoundID: r.id, Index: i, Hand: h.View(), Amount: amount})
	}
	return nil
}

// dealSecond gives every hand, then the dealer, their second card in the
// same order as the first.
func (r *round) dealSecond() error {
	for _, h := range r.hands {
		card, err := r.deal()
		if err != nil {
			return err
		}
		h.Cards = append(h.Cards, card)
	}

	card, err := r.deal()
	if err != nil {
		return err
	}
	r.dealer = append(r.dealer, card)

	r.bus.Publish(CardsDealtEvent{stamp: now(), RoundID: r.id, Hands: r.views(), Upcard: r.dealer[0]})
	return nil
}

// playHands runs the action loop for each hand by index. The slice grows
// when a hand splits: the new hand is inserted directly after the current
// one, so it is played next, before any later seat. The current hand stays
// active after its split.
func (r *round) playHands() error {
	for i := 0; i < len(r.hands); i++ {
		h := r.hands[i]
		logger := r.logger.With("player", h.Owner.Name, "hand", i)

		if h.Score().IsBlackjack() {
			logger.Debug("Hand has blackjack")
			r.resolved(i, ResolvedBlackjack)
			continue
		}

		for !h.IsResolved() {
			action, err := r.decide(i, h)
			if err != nil {
				return err
			}

			switch action {
			case Stick:
				if err := h.Stick(); err != nil {
					return err
				}
				logger.Debug("Stick", "score", h.Score())
				r.bus.Publish(PlayerActionEvent{stamp: now(), RoundID: r.id, Index: i, Action: Stick, Hand: h.View()})
				r.resolved(i, ResolvedStick)

			case Split:
				sibling, err := h.Split(r.deck)
				if err != nil {
					return fmt.Errorf("split for %s: %w", h.Owner.Name, err)
				}
				r.hands = append(r.hands[:i+1], append([]*Hand{sibling}, r.hands[i+1:]...)...)
				logger.Debug("Split", "cards", h.Cards, "sibling", sibling.Cards, "chips", h.Owner.Chips)
				siblingView := sibling.View()
				r.bus.Publish(PlayerActionEvent{stamp: now(), RoundID: r.id, Index: i, Action: Split, Hand: h.View(), Sibling: &siblingView})
				r.resolveAfterCard(i, h)

			case Twist:
				card, err := h.Twist(r.deck)
				if err != nil {
					return fmt.Errorf("twist for %s: %w", h.Owner.Name, err)
				}
				logger.Debug("Twist", "card", card, "score", h.Score())
				r.bus.Publish(PlayerActionEvent{stamp: now(), RoundID: r.id, Index: i, Action: Twist, Hand: h.View(), Card: card})
				r.resolveAfterCard(i, h)
			}
		}
	}
	return nil
}

// decide asks the hand's agent for an action. An agent answering with an
// action the hand cannot take is a bug in the agent, so it is logged and
// replaced with Stick.
func (r *round) decide(i int, h *Hand) (Action, error) {
	req := ActionRequest{
		Hand:     h.View(),
		Upcard:   r.dealer[0],
		Validate: h.Validate,
	}

	r.bus.Publish(DecisionRequiredEvent{stamp: now(), RoundID: r.id, Index: i, Decision: DecisionAction, Hand: req.Hand})
	action, err := r.agentFor(h.Owner).Act(r.ctx, req)
	if err != nil {
		return Stick, fmt.Errorf("action for %s: %w", h.Owner.Name, err)
	}

	if err := h.Validate(action); err != nil {
		r.logger.Error("Invalid action from agent, sticking", "player", h.Owner.Name, "action", action, "error", err)
		return Stick, nil
	}
	return action, nil
}

// resolveAfterCard publishes why a hand that just received a card can take
// no more actions, if it can't.
func (r *round) resolveAfterCard(i int, h *Hand) {
	switch s := h.Score(); {
	case s.IsBust():
		r.resolved(i, ResolvedBust)
	case s.IsTwentyone():
		r.resolved(i, ResolvedTwentyone)
	case s.IsBlackjack():
		r.resolved(i, ResolvedBlackjack)
	}
}

func (r *round) resolved(i int, why Resolution) {
	r.bus.Publish(HandResolvedEvent{stamp: now(), RoundID: r.id, Index: i, Hand: r.hands[i].View(), Resolution: why})
}

// playDealer reveals the hole card and draws while the dealer's score is
// below 17. There is no soft 17 rule.
func (r *round) playDealer() error {
	score := ScoreCards(r.dealer)
	r.logger.Debug("Dealer reveals", "cards", r.dealer, "score", score)
	r.bus.Publish(DealerRevealEvent{stamp: now(), RoundID: r.id, Cards: r.dealerCards(), Score: score})
	if err := r.pacer.Pause(r.ctx, r.pacer.Pacing().Reveal, "reveal"); err != nil {
		return err
	}

	for !score.IsBust() && !score.AtLeast(DealerStandsOn) {
		card, err := r.deal()
		if err != nil {
			return fmt.Errorf("dealer draw: %w", err)
		}
		r.dealer = append(r.dealer, card)
		score = ScoreCards(r.dealer)

		r.logger.Debug("Dealer twists", "card", card, "score", score)
		r.bus.Publish(DealerDrawEvent{stamp: now(), RoundID: r.id, Card: card, Cards: r.dealerCards(), Score: score})
		if err := r.pacer.Pause(r.ctx, r.pacer.Pacing().DealerDraw, "dealer-draw"); err != nil {
			return err
		}
	}

	r.bus.Publish(DealerStandEvent{stamp: now(), RoundID: r.id, Cards: r.dealerCards(), Score: score})
	return nil
}

// settle pays every hand that strictly beats the dealer twice its wager.
// Ties lose. Winnings are reported per player in seat order.
func (r *round) settle() *RoundResult {
	dealerScore := ScoreCards(r.dealer)
	result := &RoundResult{
		ID:              r.id,
		Number:          r.number,
		Hands:           make([]HandResult, 0, len(r.hands)),
		Dealer:          r.dealerCards(),
		DealerScore:     dealerScore,
		DealerBlackjack: dealerScore.IsBlackjack(),
	}

	net := make(map[*Player]int, len(r.players))
	for _, h := range r.hands {
		hr := HandResult{Player: h.Owner, Net: -h.Wager}
		if h.Score().Beats(dealerScore) {
			h.Owner.Chips += 2 * h.Wager
			hr.Won = true
			hr.Net = h.Wager
		}
		net[h.Owner] += hr.Net
		hr.Hand = h.View()
		result.Hands = append(result.Hands, hr)

		r.logger.Debug("Hand settled", "player", h.Owner.Name, "score", h.Score(), "wager", h.Wager, "net", hr.Net)
	}

	for _, p := range r.players {
		result.Winnings = append(result.Winnings, Winnings{Player: p, Net: net[p]})
	}
	return result
}

func (r *round) views() []HandView {
	views := make([]HandView, len(r.hands))
	for i, h := range r.hands {
		views[i] = h.View()
	}
	return views
}

func (r *round) dealerCards() []deck.Card {
	return append([]deck.Card(nil), r.dealer...)
}

func totalChips(players []*Player) int {
	total := 0
	for _, p := range players {
		total += p.Chips
	}
	return total
}

// verifyChipConservation checks that the chips the players hold after the
// round differ from what they held before by exactly the settled winnings.
func verifyChipConservation(before int, players []*Player, result *RoundResult) error {
	var errs []error

	net := 0
	for _, w := range result.Winnings {
		net += w.Net
	}
	if after := totalChips(players); after != before+net {
		errs = append(errs, fmt.Errorf("%w: players held %d, now %d, net winnings %d", ErrChipsNotConserved, before, after, net))
	}

	for _, p := range players {
		if p.Chips < 0 {
			errs = append(errs, fmt.Errorf("%w: %s has %d chips", ErrChipsNotConserved, p.Name, p.Chips))
		}
	}
	return errors.Join(errs...)
}
