package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/gaspardpetit/harness/sdk/spi"
)

// Outcome is the variant of a parse Result.
type Outcome int

const (
	// Parsed means the invocation is valid and the run should continue.
	Parsed Outcome = iota
	// HelpRequested means help was asked for; the caller prints help and stops.
	HelpRequested
	// Failed means the invocation is malformed. Err wraps spi.ErrParse.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Parsed:
		return "parsed"
	case HelpRequested:
		return "help"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the tagged outcome of Parse. Args is set only when Outcome is Parsed.
type Result struct {
	Outcome Outcome
	Args    *Arguments
	Err     error
}

// Continue reports whether the caller should proceed with the run.
func (r Result) Continue() bool { return r.Outcome == Parsed }

// Parse matches argv (without the program name) against the grammar.
func (p *Parser) Parse(argv []string) Result {
	if p.helpRequested(argv) {
		return Result{Outcome: HelpRequested}
	}

	fs := pflag.NewFlagSet(p.program, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SetInterspersed(true)

	bools := map[*spi.Flag]*bool{}
	strs := map[*spi.Flag]*onceValue{}
	lists := map[*spi.Flag]*[]string{}
	for _, f := range p.flags {
		switch f.Type {
		case spi.FlagOnly:
			bools[f] = fs.BoolP(f.Key, f.Short, false, f.Help)
		case spi.FlagWithOneArg:
			v := &onceValue{}
			fs.VarP(v, f.Key, f.Short, f.Help)
			strs[f] = v
		case spi.FlagWithManyArg:
			lists[f] = fs.StringArrayP(f.Key, f.Short, nil, f.Help)
		}
	}

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Result{Outcome: HelpRequested}
		}
		return failed("%v", err)
	}

	values := map[string]Value{}
	for _, f := range p.flags {
		if !f.IsOption() || !fs.Changed(f.Key) {
			continue
		}
		switch f.Type {
		case spi.FlagOnly:
			values[f.Key] = Bool(*bools[f])
		case spi.FlagWithOneArg:
			values[f.Key] = String(strs[f].value)
		case spi.FlagWithManyArg:
			values[f.Key] = List(*lists[f]...)
		}
	}

	if err := p.bindPositionals(fs.Args(), values); err != nil {
		return Result{Outcome: Failed, Err: err}
	}

	args := NewArguments(values)
	if err := p.checkExclusive(args); err != nil {
		return Result{Outcome: Failed, Err: err}
	}
	return Result{Outcome: Parsed, Args: args}
}

func failed(format string, a ...any) Result {
	return Result{Outcome: Failed, Err: fmt.Errorf("%w: "+format, append([]any{spi.ErrParse}, a...)...)}
}

// helpRequested scans for help tokens ahead of "--" so that help wins over
// any other, possibly invalid, token. Option values are skipped: in
// "--app help" the token is the application id.
func (p *Parser) helpRequested(argv []string) bool {
	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "--":
			return false
		case HelpKey, "--help", "-h":
			return true
		}
		if p.takesNextValue(argv[i]) {
			i++
		}
	}
	return false
}

// takesNextValue reports whether tok is an option whose value is the
// following token.
func (p *Parser) takesNextValue(tok string) bool {
	var f *spi.Flag
	switch {
	case strings.HasPrefix(tok, "--") && !strings.Contains(tok, "="):
		f = p.byKey[tok[2:]]
	case len(tok) == 2 && tok[0] == '-' && tok[1] != '-':
		f = p.byShort[tok[1:]]
	}
	return f != nil && (f.Type == spi.FlagWithOneArg || f.Type == spi.FlagWithManyArg)
}

// onceValue is a string option that may be given only once.
type onceValue struct {
	value string
	set   bool
}

func (v *onceValue) Set(s string) error {
	if v.set {
		return errors.New("given more than once")
	}
	v.value, v.set = s, true
	return nil
}

func (v *onceValue) String() string { return v.value }
func (v *onceValue) Type() string   { return "string" }

// bindPositionals assigns bare tokens. A token naming a declared command marks
// it present; anything else binds to the first unbound positional whose group
// has no command or whose command was already seen.
func (p *Parser) bindPositionals(tokens []string, values map[string]Value) error {
	for _, tok := range tokens {
		if f, ok := p.byKey[tok]; ok && f.Type == spi.Command {
			if _, dup := values[f.Key]; dup {
				return fmt.Errorf("%w: command %q given twice", spi.ErrParse, tok)
			}
			values[f.Key] = Bool(true)
			continue
		}
		if strings.HasPrefix(tok, "-") && tok != "-" {
			return fmt.Errorf("%w: unexpected option %q", spi.ErrParse, tok)
		}
		bound := false
		for _, f := range p.flags {
			if f.Type != spi.Positional {
				continue
			}
			if _, taken := values[f.Key]; taken {
				continue
			}
			if !p.commandSatisfied(p.groupOf[f], values) {
				continue
			}
			values[f.Key] = String(tok)
			bound = true
			break
		}
		if !bound {
			return fmt.Errorf("%w: unexpected argument %q", spi.ErrParse, tok)
		}
	}
	return nil
}

func (p *Parser) commandSatisfied(g spi.FlagGroup, values map[string]Value) bool {
	cmds := g.Commands()
	if len(cmds) == 0 {
		return true
	}
	for _, c := range cmds {
		if _, ok := values[c.Key]; ok {
			return true
		}
	}
	return false
}

// checkExclusive rejects two present members of any UseOne group.
func (p *Parser) checkExclusive(args *Arguments) error {
	for _, o := range p.groups {
		if o.group.Type != spi.UseOne {
			continue
		}
		var present []string
		for _, f := range o.group.Flags {
			if args.Contains(f) {
				present = append(present, f.Command())
			}
		}
		if len(present) > 1 {
			return fmt.Errorf("%w: %s are mutually exclusive", spi.ErrParse, strings.Join(present, " and "))
		}
	}
	return nil
}
