package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"twigwind/state"
)

// Tokens prints stylesheet for class tokens given on command line. Each
// argument may hold several tokens separated by spaces, the way class
// attribute does.
func Tokens(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("css")

	if cmd.NArg() == 0 {
		return errors.New("no tokens have been specified")
	}

	env.Verify = cmd.Bool("verify") || env.Cfg.Generator.Verify
	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	return printTokens(ctx, out, cmd.Args().Slice(), log)
}

func printTokens(ctx context.Context, out io.Writer, args []string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)
	g := env.NewGenerator()

	for _, arg := range args {
		for _, token := range strings.Fields(arg) {
			if !g.Process(token) && !g.Seen(token) {
				log.Warn("Unknown utility class", zap.String("token", token))
			}
		}
	}
	for _, token := range g.Unmatched() {
		log.Warn("Utility class does not produce any rule", zap.String("token", token))
	}
	if env.Verify {
		verify(g, "command line", log)
	}

	if g.Len() == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out, g.CSS()); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	return nil
}
