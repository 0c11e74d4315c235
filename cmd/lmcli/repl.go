package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lettermath/backend/png"
	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/core/font"
	"github.com/npillmayer/lettermath/engine/colors"
	"github.com/npillmayer/lettermath/engine/evaluate"
	"github.com/npillmayer/lettermath/engine/expr"
	"github.com/npillmayer/schuko"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	repl    *readline.Instance
	conf    schuko.Configuration
	catalog *colors.Catalog
	session *evaluate.Session
	source  string // last expression entered
}

func startREPL(conf schuko.Configuration, catalog *colors.Catalog, tc *font.TypeCase,
	factory colors.Factory) error {
	//
	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "lm > ",
		AutoComplete: completer(catalog),
	})
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot start interactive mode")
	}
	defer repl.Close()
	intp := &Intp{
		repl:    repl,
		conf:    conf,
		catalog: catalog,
		session: evaluate.NewSession(tc, factory),
	}
	intp.session.OnCommit(intp.show)
	pterm.Info.Println("Welcome to lettermath")
	pterm.Info.Println("Quit with <ctrl>D or :quit, help with :help")
	intp.REPL()
	return nil
}

func completer(catalog *colors.Catalog) *readline.PrefixCompleter {
	var names []readline.PrefixCompleterInterface
	for _, e := range catalog.Entries() {
		names = append(names, readline.PcItem(e.Name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(":font"),
		readline.PcItem(":colors", names...),
		readline.PcItem(":save"),
		readline.PcItem(":show"),
		readline.PcItem(":grammar"),
		readline.PcItem(":help"),
		readline.PcItem(":quit"),
	)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(errorMessage(err))
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(errorMessage(err))
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command codes
const (
	EXPR int = iota
	FONT
	COLORS
	SAVE
	SHOW
	GRAMMAR
	HELP
	QUIT
)

// Command is a line of input, either an expression or a colon-command.
type Command struct {
	code int
	arg  string
}

var commands = map[string]int{
	"font":    FONT,
	"colors":  COLORS,
	"save":    SAVE,
	"show":    SHOW,
	"grammar": GRAMMAR,
	"help":    HELP,
	"quit":    QUIT,
}

func parseCommand(line string) (Command, error) {
	if !strings.HasPrefix(line, ":") {
		return Command{code: EXPR, arg: line}, nil
	}
	name, arg, _ := strings.Cut(line[1:], " ")
	code, ok := commands[strings.ToLower(name)]
	if !ok {
		return Command{}, core.Error(core.EINVALID, "unknown command :%s, try :help", name)
	}
	cmd := Command{code: code, arg: strings.TrimSpace(arg)}
	if (code == FONT || code == SAVE) && cmd.arg == "" {
		return cmd, core.Error(core.EINVALID, "command :%s needs an argument", name)
	}
	return cmd, nil
}

func (intp *Intp) execute(cmd Command) (bool, error) {
	tracer().Debugf("command %d %q", cmd.code, cmd.arg)
	switch cmd.code {
	case QUIT:
		return true, nil
	case EXPR:
		intp.render(cmd.arg)
	case FONT:
		tc, err := loadFont(intp.conf, font.Spec(cmd.arg))
		if err != nil {
			return false, err
		}
		intp.session.SetFont(tc)
		pterm.Info.Printfln("font is %s", tc)
		intp.render(intp.source)
	case COLORS:
		if cmd.arg == "" {
			listStrategies(intp.catalog)
			return false, nil
		}
		factory, err := lookupColors(intp.catalog, cmd.arg)
		if err != nil {
			return false, err
		}
		intp.session.SetColors(factory)
		intp.render(intp.source)
	case SAVE:
		r := intp.session.Latest()
		if r == nil || r.Bitmap == nil {
			return false, core.Error(core.EMISSING, "nothing to save")
		}
		if err := png.WriteFile(cmd.arg, r.Bitmap); err != nil {
			return false, err
		}
		pterm.Success.Printfln("wrote %s", cmd.arg)
	case SHOW:
		r := intp.session.Latest()
		if r == nil || r.Tree == nil {
			return false, core.Error(core.EMISSING, "nothing to show")
		}
		printResult(r, true, true, true)
	case GRAMMAR:
		pterm.Println(expr.GrammarSource)
	case HELP:
		help()
	}
	return false, nil
}

// render starts rendering an expression and waits for the result, which
// will be displayed by show.
func (intp *Intp) render(text string) {
	if text == "" {
		text = expr.DefaultExpression
	}
	intp.source = text
	intp.session.Update(text)
	intp.session.Wait()
}

// show is called for every result the session commits.
func (intp *Intp) show(r *evaluate.Result) {
	if r.Err != nil {
		reportError(r)
		return
	}
	pterm.Info.Printfln("#%d %s → %d×%d px", r.ID, expr.Pretty(r.Tree),
		r.Bitmap.Width(), r.Bitmap.Height())
}

func listStrategies(catalog *colors.Catalog) {
	data := pterm.TableData{{"Name", "Description"}}
	for _, e := range catalog.Entries() {
		data = append(data, []string{e.Name, e.Description})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	<expression>     render an expression, e.g. (G - H) || (J ^ H)
	:font SPEC       set the font, e.g. :font bold 80px Go
	:colors [NAME]   list color strategies or select one
	:save FILE       write the latest picture to a PNG file
	:show            print the latest syntax tree
	:grammar         print the grammar of expressions
	:quit            leave
	`)
}
