// Package display narrates a blackjack table on a line-based terminal.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/lox/twentyone/internal/deck"
	"github.com/lox/twentyone/internal/game"
	"github.com/lox/twentyone/internal/statistics"
)

// Styles holds every style the console renders with. They are bound to the
// console's renderer so the colour profile follows the output, not stdout.
type Styles struct {
	Header    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Hidden    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Border    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	card := r.NewStyle().Background(lipgloss.Color("7"))
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		RedCard:   card.Foreground(lipgloss.Color("1")),
		BlackCard: card.Foreground(lipgloss.Color("0")),
		Hidden: r.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1")).
			Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Border: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Console writes table talk for every round event. It implements
// game.EventSubscriber.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles

	// index of the hand the last "--" separator was printed for
	current int
}

// NewConsole creates a console writing to w with the given colour profile.
// Pass termenv.Ascii for plain text.
func NewConsole(w io.Writer, profile termenv.Profile) *Console {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return &Console{out: w, styles: newStyles(r), current: -1}
}

// Card renders a single card: red or black on white, or a red back for a
// face-down card.
func (c *Console) Card(card deck.Card) string {
	switch {
	case card.IsHidden():
		return c.styles.Hidden.Render(card.String())
	case card.IsRed():
		return c.styles.RedCard.Render(card.String())
	default:
		return c.styles.BlackCard.Render(card.String())
	}
}

// Cards renders cards followed by their score, e.g. "A♥ 7♣ (total: 18)".
func (c *Console) Cards(cards []deck.Card) string {
	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = c.Card(card)
	}

	score := game.ScoreCards(cards)
	if score.IsBlackjack() {
		return strings.Join(rendered, " ") + " (blackjack)"
	}
	return strings.Join(rendered, " ") + " (total: " + score.String() + ")"
}

// Hand renders e.g. "Ann (chips: 8) 9♣ 9♦ (total: 18) current bet: 2".
func (c *Console) Hand(h game.HandView) string {
	return fmt.Sprintf("%s (chips: %d) %s current bet: %d", h.Owner, h.Chips, c.Cards(h.Cards), h.Wager)
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// separate prints "--" the first time hand i is narrated.
func (c *Console) separate(i int) {
	if i != c.current {
		c.println("--")
		c.current = i
	}
}

func (c *Console) hands(views []game.HandView) {
	c.println("-- Current hands --")
	for _, h := range views {
		c.println(c.Hand(h))
	}
}

// OnEvent implements game.EventSubscriber.
func (c *Console) OnEvent(event game.GameEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e := event.(type) {
	case game.RoundStartEvent:
		c.current = -1
		c.println(c.styles.Header.Render(fmt.Sprintf(" Round %d ", e.Number)) + " " + c.styles.Info.Render(e.RoundID))
		c.hands(e.Hands)
		c.println("Dealer: " + c.Cards([]deck.Card{e.Upcard}))

	case game.DecisionRequiredEvent:
		if e.Decision == game.DecisionBet {
			c.println("--")
		} else {
			c.separate(e.Index)
		}
		if e.Hand.Kind == game.Human {
			c.println(c.Hand(e.Hand))
		}

	case game.BetPlacedEvent:
		c.printf("%s bets %d\n", e.Hand.Owner, e.Amount)

	case game.CardsDealtEvent:
		c.current = -1
		c.hands(e.Hands)
		c.println("Dealer: " + c.Card(e.Upcard) + " " + c.Card(deck.Hidden))

	case game.PlayerActionEvent:
		name := e.Hand.Owner
		switch e.Action {
		case game.Stick:
			c.printf("%s opted to stick with %s\n", name, c.Cards(e.Hand.Cards))
		case game.Split:
			c.printf("%s opted to split\n", name)
		case game.Twist:
			c.printf("%s opted to twist\n", name)
			c.printf("%s twisted %s\n", name, c.Card(e.Card))
		}

	case game.HandResolvedEvent:
		name := e.Hand.Owner
		switch e.Resolution {
		case game.ResolvedBlackjack:
			c.separate(e.Index)
			c.println(c.styles.Success.Render(name + " has blackjack."))
		case game.ResolvedTwentyone:
			c.println(c.styles.Success.Render(name + " has 21."))
		case game.ResolvedBust:
			c.println(c.styles.Error.Render(name + " has bust."))
		}

	case game.DealerBlackjackEvent:
		c.println("Dealer: " + c.Cards(e.Cards))
		c.println(c.styles.Error.Render("Dealer wins!"))

	case game.DealerRevealEvent:
		c.println("--")
		c.println("Dealer reveals their cards: " + c.Cards(e.Cards))

	case game.DealerDrawEvent:
		c.println("Dealer twisted " + c.Card(e.Card))

	case game.DealerStandEvent:
		verb := "sticks"
		if e.Score.IsBust() {
			verb = "bust"
		}
		c.printf("Dealer %s with %s\n", verb, c.Cards(e.Cards))

	case game.RoundEndEvent:
		c.println("--")
		for _, w := range e.Result.Winnings {
			c.println(c.winnings(w.Player.Name, w.Net))
		}

	case game.PlayerBrokeEvent:
		c.println(c.styles.Error.Render(e.Player + " is broke."))
	}
}

func (c *Console) winnings(name string, net int) string {
	switch {
	case net > 0:
		return c.styles.Success.Render(fmt.Sprintf("%s won %s.", name, chips(net)))
	case net < 0:
		return c.styles.Error.Render(fmt.Sprintf("%s lost %s.", name, chips(-net)))
	default:
		return name + " broke even."
	}
}

// chips renders a count with the right plural: "1 chip", "3 chips".
func chips(n int) string {
	if n == 1 {
		return "1 chip"
	}
	return strconv.Itoa(n) + " chips"
}

// Summary renders per-player statistics as a table, with a combined row
// when more than one player took part.
func (c *Console) Summary(tracker *statistics.Tracker) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.styles.Border).
		Headers("Player", "Rounds", "Hands", "Won", "Blackjacks", "Busts", "Splits", "Net", "Per round")

	names := tracker.Players()
	for _, name := range names {
		s, _ := tracker.Player(name)
		t.Row(statsRow(name, s)...)
	}
	if len(names) > 1 {
		t.Row(statsRow("All", tracker.Overall())...)
	}
	return t.String()
}

func statsRow(name string, s statistics.Statistics) []string {
	return []string{
		name,
		strconv.Itoa(s.Rounds),
		strconv.Itoa(s.Hands),
		fmt.Sprintf("%d (%.0f%%)", s.Wins, 100*s.WinRate()),
		strconv.Itoa(s.Blackjacks),
		strconv.Itoa(s.Busts),
		strconv.Itoa(s.Splits),
		fmt.Sprintf("%+d", s.Net),
		fmt.Sprintf("%+.3f ± %.3f", s.Mean(), s.StdDev()),
	}
}

// Print writes a line outside of round narration, e.g. the summary.
func (c *Console) Print(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.println(s)
}
