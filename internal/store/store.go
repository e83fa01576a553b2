package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	ir "github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang"
)

// schema: mỗi rule một dòng trong match_rules (kể cả rule không có hook),
// hook nằm ở match_hooks theo vị trí.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS match_rules (
    rule_name TEXT PRIMARY KEY
)`,
	`CREATE TABLE IF NOT EXISTS match_hooks (
    rule_name TEXT NOT NULL REFERENCES match_rules(rule_name) ON DELETE CASCADE,
    position INT NOT NULL,
    hook_name TEXT NOT NULL,
    args TEXT,
    kwargs TEXT,
    match_if_predicate_is BOOLEAN NOT NULL DEFAULT TRUE,
    PRIMARY KEY (rule_name, position)
)`,
}

// Store lưu match hook của các rule trong Postgres (driver lib/pq do caller import).
// args/kwargs được lưu dạng JSON.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// UpsertRule ghi rule (kể cả khi không có hook) và thay toàn bộ hook của nó trong một transaction.
func (s *Store) UpsertRule(ctx context.Context, r ir.MatchRule) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `INSERT INTO match_rules(rule_name) VALUES ($1)
            ON CONFLICT (rule_name) DO NOTHING`, r.Name); err != nil {
		return fmt.Errorf("rule %s: insert rule: %w", r.Name, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM match_hooks WHERE rule_name = $1`, r.Name); err != nil {
		return fmt.Errorf("rule %s: delete hooks: %w", r.Name, err)
	}
	for i, h := range r.Hooks {
		args, kwargs, encErr := encodeArgs(h)
		if encErr != nil {
			return fmt.Errorf("rule %s: match_hook[%d]: %w", r.Name, i, encErr)
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO match_hooks(rule_name, position, hook_name, args, kwargs, match_if_predicate_is)
            VALUES ($1,$2,$3,$4,$5,$6)`,
			r.Name, i, h.Name, args, kwargs, h.MatchIfPredicateIs,
		); err != nil {
			return fmt.Errorf("rule %s: insert match_hook[%d]: %w", r.Name, i, err)
		}
	}
	return tx.Commit()
}

// UpsertRules ghi lần lượt từng rule, dừng ở lỗi đầu tiên.
func (s *Store) UpsertRules(ctx context.Context, rules []ir.MatchRule) error {
	for _, r := range rules {
		if err := s.UpsertRule(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// LoadRules đọc lại toàn bộ rule, sort theo tên rule rồi vị trí hook.
// Rule không có hook vẫn được trả về (Hooks rỗng).
func (s *Store) LoadRules(ctx context.Context) ([]ir.MatchRule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT r.rule_name, h.position, h.hook_name, h.args, h.kwargs, h.match_if_predicate_is
        FROM match_rules r LEFT JOIN match_hooks h ON h.rule_name = r.rule_name
        ORDER BY r.rule_name, h.position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ir.MatchRule
	for rows.Next() {
		var (
			ruleName     string
			position     sql.NullInt64
			hookName     sql.NullString
			args, kwargs sql.NullString
			matchIf      sql.NullBool
		)
		if err := rows.Scan(&ruleName, &position, &hookName, &args, &kwargs, &matchIf); err != nil {
			return nil, err
		}
		if n := len(out); n == 0 || out[n-1].Name != ruleName {
			out = append(out, ir.MatchRule{Name: ruleName})
		}
		if !hookName.Valid {
			continue
		}
		spec := ir.HookSpec{Name: hookName.String, MatchIfPredicateIs: !matchIf.Valid || matchIf.Bool}
		if err := decodeArgs(args, kwargs, &spec); err != nil {
			return nil, fmt.Errorf("rule %s: match_hook[%d]: %w", ruleName, position.Int64, err)
		}
		last := &out[len(out)-1]
		last.Hooks = append(last.Hooks, spec)
	}
	return out, rows.Err()
}

func encodeArgs(h ir.HookSpec) (args, kwargs sql.NullString, err error) {
	if h.Args != nil {
		b, err := json.Marshal(h.Args)
		if err != nil {
			return args, kwargs, err
		}
		args = sql.NullString{String: string(b), Valid: true}
	}
	if len(h.Kwargs) > 0 {
		b, err := json.Marshal(h.Kwargs)
		if err != nil {
			return args, kwargs, err
		}
		kwargs = sql.NullString{String: string(b), Valid: true}
	}
	return args, kwargs, nil
}

func decodeArgs(args, kwargs sql.NullString, spec *ir.HookSpec) error {
	if args.Valid && args.String != "" {
		if err := json.Unmarshal([]byte(args.String), &spec.Args); err != nil {
			return fmt.Errorf("decode args: %w", err)
		}
	}
	if kwargs.Valid && kwargs.String != "" {
		if err := json.Unmarshal([]byte(kwargs.String), &spec.Kwargs); err != nil {
			return fmt.Errorf("decode kwargs: %w", err)
		}
	}
	return nil
}
