package trie

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nspcc-dev/bintrie/cli/options"
	"github.com/nspcc-dev/bintrie/pkg/bintrie"
	"github.com/nspcc-dev/bintrie/pkg/metrics"
	"github.com/nspcc-dev/bintrie/pkg/util"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	errNoKey        = errors.New("key is required")
	errRootMismatch = errors.New("merkle root mismatch")
)

// rootOutput is the structured form of the root command output.
type rootOutput struct {
	Root util.Uint256 `json:"root" yaml:"root"`
}

// NewCommands returns trie commands for the bintrie CLI.
func NewCommands() []cli.Command {
	flags := append([]cli.Flag{options.Input}, options.Common...)
	flags = flags[:len(flags):len(flags)]
	return []cli.Command{
		{
			Name:      "root",
			Usage:     "Print Merkle root of a trie built from the entries file",
			UsageText: "root [--in <file>] [--hash <algorithm>] [--format text|json|yaml] [--expect <digest>]",
			Description: `Prints the digest of the trie root. With --expect the command fails
   if the root differs from the given hex digest (0x prefix is optional).`,
			Action: printRoot,
			Flags: append(flags,
				cli.StringFlag{
					Name:  "format, f",
					Value: "text",
					Usage: "output format: text, json or yaml",
				},
				cli.StringFlag{
					Name:  "expect",
					Usage: "expected root digest",
				},
			),
		},
		{
			Name:      "get",
			Usage:     "Look up a key in a trie built from the entries file",
			UsageText: "get [--in <file>] <key>",
			Description: `Prints the value stored at the key, "empty" if the node exists only
   as an ancestor of some other key and "not found" if there is no node.
   Keys are unsigned 32-bit integers, 0x and 0b prefixes are accepted.`,
			Action: getKey,
			Flags:  flags,
		},
		{
			Name:      "path",
			Usage:     "Print bit path addressing the key",
			UsageText: "path <key>",
			Action:    printPath,
		},
		{
			Name:      "dump",
			Usage:     "Print structure of a trie built from the entries file",
			UsageText: "dump [--in <file>] [--digests]",
			Action:    dumpTrie,
			Flags: append(flags, cli.BoolFlag{
				Name:  "digests",
				Usage: "compute digests before dumping",
			}),
		},
	}
}

// parseKey parses uint32 key in decimal, hex (0x) or binary (0b) form.
func parseKey(s string) (uint32, error) {
	if len(s) == 0 {
		return 0, errNoKey
	}
	k, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid key %q: %w", s, err)
	}
	return uint32(k), nil
}

// newTrieFromContext builds a trie according to the context flags and
// returns it along with a logger and whether metrics are enabled either
// by configuration or by flag. Logger must be synced by the caller.
func newTrieFromContext(ctx *cli.Context) (*bintrie.Trie[string], *zap.Logger, bool, error) {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return nil, nil, false, err
	}
	log, _, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.ApplicationConfiguration)
	if err != nil {
		return nil, nil, false, err
	}

	tcfg := bintrie.Config[string]{
		Hash:   cfg.Trie.Hash,
		Logger: log,
	}
	withMetrics := cfg.ApplicationConfiguration.Prometheus.Enabled || ctx.Bool("metrics")
	if withMetrics {
		tcfg.Observer = metrics.Observer{}
	}
	tr := bintrie.NewTrie(tcfg)

	if path := ctx.String("in"); len(path) != 0 {
		entries, err := ReadEntries(path)
		if err != nil {
			_ = log.Sync()
			return nil, nil, false, err
		}
		for _, e := range entries {
			tr.Insert(e.Key, e.Value)
		}
		log.Debug("trie loaded",
			zap.String("file", path),
			zap.Int("entries", len(entries)),
			zap.Int("keys", tr.Len()),
			zap.Stringer("hash", cfg.Trie.Hash))
	}
	return tr, log, withMetrics, nil
}

// withTrie runs f on a trie built from the context and handles logger and
// metrics output.
func withTrie(ctx *cli.Context, f func(tr *bintrie.Trie[string]) error) error {
	tr, log, withMetrics, err := newTrieFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()

	if err := f(tr); err != nil {
		return cli.NewExitError(err, 1)
	}
	if withMetrics {
		if err := metrics.Write(ctx.App.Writer, nil); err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	return nil
}

func printRoot(ctx *cli.Context) error {
	format := ctx.String("format")
	switch format {
	case "text", "json", "yaml":
	default:
		return cli.NewExitError(fmt.Errorf("unknown output format %q", format), 1)
	}
	var expected *util.Uint256
	if s := ctx.String("expect"); len(s) != 0 {
		h, err := util.Uint256DecodeStringBE(strings.TrimPrefix(s, "0x"))
		if err != nil {
			return cli.NewExitError(fmt.Errorf("invalid expected digest: %w", err), 1)
		}
		expected = &h
	}
	return withTrie(ctx, func(tr *bintrie.Trie[string]) error {
		root := tr.MerkleRoot()
		if err := writeRoot(ctx.App.Writer, format, root); err != nil {
			return err
		}
		if expected != nil && !expected.Equals(root) {
			return fmt.Errorf("%w: expected %s, got %s", errRootMismatch, expected.StringBE(), root.StringBE())
		}
		return nil
	})
}

func writeRoot(w io.Writer, format string, root util.Uint256) error {
	switch format {
	case "json":
		return json.NewEncoder(w).Encode(rootOutput{Root: root})
	case "yaml":
		data, err := yaml.Marshal(rootOutput{Root: root})
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		_, err := fmt.Fprintln(w, root.StringBE())
		return err
	}
}

func getKey(ctx *cli.Context) error {
	key, err := parseKey(ctx.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return withTrie(ctx, func(tr *bintrie.Trie[string]) error {
		var out string
		switch v, p := tr.Get(key); p {
		case bintrie.Absent:
			out = "not found"
		case bintrie.Empty:
			out = "empty"
		default:
			out = strconv.Quote(v)
		}
		_, err := fmt.Fprintln(ctx.App.Writer, out)
		return err
	})
}

func printPath(ctx *cli.Context) error {
	key, err := parseKey(ctx.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	_, err = fmt.Fprintln(ctx.App.Writer, bintrie.PathToNode(key))
	return err
}

func dumpTrie(ctx *cli.Context) error {
	return withTrie(ctx, func(tr *bintrie.Trie[string]) error {
		if ctx.Bool("digests") {
			_ = tr.MerkleRoot()
		}
		return tr.Dump(ctx.App.Writer)
	})
}
