package matcher

// Factory dựng predicate từ cấu hình. Params là tên tham số theo thứ tự;
// tham số vị trí (Args.Value) luôn gán cho Params[0].
type Factory struct {
	Params []string
	Build  func(a Args) (Predicate, error)
}

// -------- factory helpers --------

func noArgs(ctor func() Predicate) Factory {
	return Factory{
		Build: func(Args) (Predicate, error) { return ctor(), nil },
	}
}

// listArg: một tham số string/list (phrases, pos, dep, tag, lemma, token...).
func listArg(param string, ctor func(...string) Predicate) Factory {
	return Factory{
		Params: []string{param},
		Build: func(a Args) (Predicate, error) {
			vals, err := a.Strings(param, true)
			if err != nil {
				return nil, err
			}
			return ctor(vals...), nil
		},
	}
}

func regexArg(ctor func(pattern string, sensitive bool) (Predicate, error)) Factory {
	return Factory{
		Params: []string{"regex", "sensitive"},
		Build: func(a Args) (Predicate, error) {
			pattern, err := a.String("regex", true)
			if err != nil {
				return nil, err
			}
			sensitive, err := a.Bool("sensitive", false)
			if err != nil {
				return nil, err
			}
			return ctor(pattern, sensitive)
		},
	}
}

func precededByLemmaFactory() Factory {
	return Factory{
		Params: []string{"lemma", "distance"},
		Build: func(a Args) (Predicate, error) {
			lemmas, err := a.Strings("lemma", true)
			if err != nil {
				return nil, err
			}
			distance, err := a.Int("distance", 1)
			if err != nil {
				return nil, err
			}
			return PrecededByLemma(distance, lemmas...)
		},
	}
}

func sentenceHasFactory() Factory {
	return Factory{
		Params: []string{"phrases", "case_sensitive"},
		Build: func(a Args) (Predicate, error) {
			phrases, err := a.Strings("phrases", true)
			if err != nil {
				return nil, err
			}
			cs, err := a.Bool("case_sensitive", false)
			if err != nil {
				return nil, err
			}
			return newSentenceHas(a.logger(), cs, phrases), nil
		},
	}
}

func relativeXIsYFactory() Factory {
	return Factory{
		Params: []string{"children_or_ancestors", "pos_or_dep", "value"},
		Build: func(a Args) (Predicate, error) {
			relName, err := a.String("children_or_ancestors", true)
			if err != nil {
				return nil, err
			}
			attrName, err := a.String("pos_or_dep", false)
			if err != nil {
				return nil, err
			}
			values, err := a.Strings("value", false)
			if err != nil {
				return nil, err
			}
			rel, err := ParseRelation(relName)
			if err != nil {
				return nil, err
			}
			attr, err := ParseAttr(attrName)
			if err != nil {
				return nil, err
			}
			return RelativeXIsY(rel, attr, values...)
		},
	}
}

func debugHookFactory() Factory {
	return Factory{
		Params: []string{"match_name"},
		Build: func(a Args) (Predicate, error) {
			name, err := a.String("match_name", true)
			if err != nil {
				return nil, err
			}
			return DebugHook(name, a.logger()), nil
		},
	}
}

// ---------------- Registry helpers ----------------

func RegisterDefaults(registry map[string]Factory) {
	// Phrase
	registry["succeeded_by_phrase"] = listArg("phrases", SucceededByPhrase)
	registry["preceded_by_phrase"] = listArg("phrases", PrecededByPhrase)
	registry["surrounded_by_phrase"] = listArg("phrase", SurroundedByPhrase)
	registry["sentence_ends_with"] = listArg("phrase", SentenceEndsWith)
	registry["part_of_phrase"] = listArg("phrase", PartOfPhrase)

	// Token attributes
	registry["succeeded_by_pos"] = listArg("pos", SucceededByPOS)
	registry["preceded_by_pos"] = listArg("pos", PrecededByPOS)
	registry["succeeded_by_dep"] = listArg("dep", SucceededByDep)
	registry["preceded_by_dep"] = listArg("dep", PrecededByDep)
	registry["succeeded_by_tag"] = listArg("tag", SucceededByTag)
	registry["preceded_by_tag"] = listArg("tag", PrecededByTag)
	registry["succeeded_by_lemma"] = listArg("lemma", SucceededByLemma)
	registry["preceded_by_lemma"] = precededByLemmaFactory()
	registry["succeeded_by_token"] = listArg("token", SucceededByToken)
	registry["preceded_by_token"] = listArg("token", PrecededByToken)
	registry["succeeded_by_regex"] = regexArg(SucceededByRegex)
	registry["preceded_by_regex"] = regexArg(PrecededByRegex)

	// Token classes
	registry["succeeded_by_num"] = noArgs(SucceededByNum)
	registry["preceded_by_num"] = noArgs(PrecededByNum)
	registry["succeeded_by_currency"] = noArgs(SucceededByCurrency)
	registry["preceded_by_currency"] = noArgs(PrecededByCurrency)
	registry["succeeded_by_punct"] = noArgs(SucceededByPunct)
	registry["preceded_by_punct"] = noArgs(PrecededByPunct)
	registry["succeeded_by_same_token"] = noArgs(SucceededBySameToken)
	registry["succeeded_by_word"] = noArgs(SucceededByWord)

	// Sentence / document
	registry["is_start_of_sentence"] = noArgs(IsStartOfSentence)
	registry["is_end_of_sentence"] = noArgs(IsEndOfSentence)
	registry["sentence_has"] = sentenceHasFactory()
	registry["preceded_by_space"] = noArgs(PrecededBySpace)
	registry["part_of_compound"] = noArgs(PartOfCompound)

	// Tree
	registry["relative_x_is_y"] = relativeXIsYFactory()

	// Diagnostic
	registry["debug_hook"] = debugHookFactory()

	// Tên cũ viết sai chính tả, trỏ về cùng implementation
	registry["preceeded_by_phrase"] = registry["preceded_by_phrase"]
	registry["preceeded_by_pos"] = registry["preceded_by_pos"]
	registry["preceeded_by_dep"] = registry["preceded_by_dep"]
}
