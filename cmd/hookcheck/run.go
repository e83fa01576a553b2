package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	ir "github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang"
	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"
	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/matcher"
	"github.com/PhucNguyen204/MatchHooks/internal/rules"
	"github.com/PhucNguyen204/MatchHooks/internal/store"
	"github.com/PhucNguyen204/MatchHooks/pkg/engine"
)

type checkOptions struct {
	RulesPath  string
	DSN        string
	DocPath    string
	CandsPath  string
	FilterName string
	Debug      bool
}

// spanOut là một match còn lại sau hook + filter.
type spanOut struct {
	MatchName   string   `json:"match_name"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions"`
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// loadRules: ưu tiên Postgres khi có DSN, ngược lại đọc thư mục match dict.
func loadRules(ctx context.Context, rulesPath, dsn string) ([]ir.MatchRule, error) {
	if dsn != "" {
		db, err := openDB(ctx, dsn)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		rs, err := store.New(db).LoadRules(ctx)
		if err != nil {
			return nil, fmt.Errorf("load rules from db: %w", err)
		}
		logger.Debug("loaded rules from db", zap.Int("rules", len(rs)))
		return rs, nil
	}
	if rulesPath == "" {
		return nil, errors.New("no rule source: set --rules or --db")
	}
	rs, err := rules.LoadDirRecursive(rulesPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded rules from dir", zap.String("path", rulesPath), zap.Int("rules", len(rs)))
	return rs, nil
}

func runCheck(ctx context.Context, w io.Writer, opts checkOptions) error {
	mode, err := ir.ParseFilterMode(opts.FilterName)
	if err != nil {
		return err
	}
	cfg := ir.DefaultEngineConfig().WithFilter(mode).WithDebug(opts.Debug)

	rs, err := loadRules(ctx, opts.RulesPath, opts.DSN)
	if err != nil {
		return err
	}
	eng, err := engine.Compile(rs, cfg, logger)
	if err != nil {
		return err
	}

	b, err := os.ReadFile(opts.DocPath)
	if err != nil {
		return err
	}
	d, err := doc.FromJSON(b)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.DocPath, err)
	}

	var cands []engine.Candidate
	b, err = os.ReadFile(opts.CandsPath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, &cands); err != nil {
		return fmt.Errorf("%s: %w", opts.CandsPath, err)
	}

	spans, err := eng.Process(d, cands)
	if err != nil {
		return err
	}
	logger.Info("processed candidates",
		zap.Int("candidates", len(cands)),
		zap.Int("survivors", len(spans)),
		zap.Stringer("filter", mode))

	out := make([]spanOut, 0, len(spans))
	for _, s := range spans {
		out = append(out, spanOut{
			MatchName:   s.MatchName,
			Start:       s.Start,
			End:         s.End,
			Text:        s.Text(),
			Suggestions: s.Suggestions,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runValidate(ctx context.Context, w io.Writer, rulesPath, dsn string) error {
	rs, err := loadRules(ctx, rulesPath, dsn)
	if err != nil {
		return err
	}
	eng, err := engine.Compile(rs, ir.DefaultEngineConfig(), logger)
	if err != nil {
		return err
	}
	usage := eng.HookUsage()
	names := make([]string, 0, len(usage))
	for name := range usage {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "%d rules OK\n", eng.RuleCount())
	for _, name := range names {
		fmt.Fprintf(w, "  %-28s %d\n", name, usage[name])
	}
	return nil
}

func runImport(ctx context.Context, w io.Writer, rulesPath, dsn string) error {
	if dsn == "" {
		return errors.New("import needs --db")
	}
	rs, err := rules.LoadDirRecursive(rulesPath)
	if err != nil {
		return err
	}
	// compile trước để không ghi rule hỏng vào db
	if _, err := engine.Compile(rs, ir.DefaultEngineConfig(), logger); err != nil {
		return err
	}
	db, err := openDB(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	st := store.New(db)
	if err := st.InitSchema(ctx); err != nil {
		return err
	}
	if err := st.UpsertRules(ctx, rs); err != nil {
		return err
	}
	fmt.Fprintf(w, "imported %d rules from %s\n", len(rs), rulesPath)
	return nil
}

func runHooks(w io.Writer) error {
	for _, name := range matcher.NewHookBuilder().HookNames() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}
