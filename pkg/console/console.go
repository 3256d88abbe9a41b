package console

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
	"github.com/pterm/pterm"
)

// Command is what the player asked for at the wager prompt
type Command int

const (
	CommandBet Command = iota
	CommandExit
	CommandStats
)

const invalidWager = "Invalid input. Please enter your bet or (e)xit the table."

// WagerInput is a parsed line from the wager prompt
type WagerInput struct {
	Command Command
	Amount  int64
}

// Console reads player input and renders the table on a terminal
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a console reading from in and writing to out
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ParseWager interprets a line typed at the wager prompt
func ParseWager(input string, balance int64) (WagerInput, error) {
	token := strings.ToLower(strings.TrimSpace(input))
	switch token {
	case "e":
		return WagerInput{Command: CommandExit}, nil
	case "t":
		return WagerInput{Command: CommandStats}, nil
	}

	amount, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return WagerInput{}, types.WrapError(types.ErrInvalidWager, invalidWager, err)
	}
	if err := blackjack.ValidateWager(balance, amount); err != nil {
		return WagerInput{}, err
	}
	return WagerInput{Command: CommandBet, Amount: amount}, nil
}

type lineResult struct {
	line string
	err  error
}

// readLine returns the next line of input. A final line without a newline is
// still returned; io.EOF is only reported once input is exhausted. A
// cancelled context abandons the pending read.
func (c *Console) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result := make(chan lineResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		result <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-result:
		if r.err == io.EOF && r.line != "" {
			return r.line, nil
		}
		return r.line, r.err
	}
}

// ReadWager prompts until the player places a valid bet, exits or asks for stats
func (c *Console) ReadWager(ctx context.Context, balance int64) (WagerInput, error) {
	c.println("You now have " + pterm.LightYellow(balance) + " chips.")
	c.println("How much would you like to bet? (e)xit if you would like to leave the table. S(t)ats to see your record.")

	for {
		line, err := c.readLine(ctx)
		if err != nil {
			return WagerInput{}, err
		}
		input, err := ParseWager(line, balance)
		if err != nil {
			c.ShowError(err)
			continue
		}
		return input, nil
	}
}

// NextAction prompts until the player types a known action. Eligibility is
// checked by the round, which reports rejections through ActionRejected.
func (c *Console) NextAction(ctx context.Context, table blackjack.Table) (blackjack.PlayerAction, error) {
	var eligible []blackjack.PlayerAction
	if hand, ok := table.ActiveHand(); ok {
		eligible = hand.Eligible
	}
	c.printActions(eligible)

	for {
		line, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		action, err := blackjack.ParseAction(line)
		if err != nil {
			c.ShowError(err)
			c.printActions(eligible)
			continue
		}
		return action, nil
	}
}

// ShowError prints the player-facing part of err
func (c *Console) ShowError(err error) {
	c.println(pterm.LightRed(message(err)))
}

func message(err error) string {
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		return gameErr.Message
	}
	return err.Error()
}

func (c *Console) println(a ...interface{}) {
	pterm.Fprintln(c.out, a...)
}
