package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// Op is a single edit operation between two texts
// Op 两段文本之间的单个编辑操作
type Op struct {
	Type string // equal / insert / delete
	Text string
}

// Result carries a computed diff in several renderings
// Result 差异计算结果的多种呈现
type Result struct {
	Ops       []Op
	Patch     string
	HTML      string
	Identical bool
}

// Compare diffs text1 against text2. Line mode diffs whole lines,
// otherwise a semantic character-level diff is produced.
// Compare 对比两段文本, line 模式按整行对比, 否则做语义化的字符级对比
func Compare(text1, text2 string, lineMode bool) *Result {
	dmp := diffmatchpatch.New()

	var diffs []diffmatchpatch.Diff
	if text1 == text2 {
		// 相同文本直接短路, 不跑差异算法
		diffs = []diffmatchpatch.Diff{{Type: diffmatchpatch.DiffEqual, Text: text1}}
	} else if lineMode {
		chars1, chars2, lines := dmp.DiffLinesToChars(text1, text2)
		diffs = dmp.DiffMain(chars1, chars2, false)
		diffs = dmp.DiffCharsToLines(diffs, lines)
	} else {
		diffs = dmp.DiffMain(text1, text2, false)
		diffs = dmp.DiffCleanupSemantic(diffs)
	}

	ops := make([]Op, 0, len(diffs))
	for _, d := range diffs {
		ops = append(ops, Op{Type: opName(d.Type), Text: d.Text})
	}

	return &Result{
		Ops:       ops,
		Patch:     dmp.PatchToText(dmp.PatchMake(text1, diffs)),
		HTML:      dmp.DiffPrettyHtml(diffs),
		Identical: text1 == text2,
	}
}

// opName 差异操作名
func opName(op diffmatchpatch.Operation) string {
	switch op {
	case diffmatchpatch.DiffInsert:
		return "insert"
	case diffmatchpatch.DiffDelete:
		return "delete"
	default:
		return "equal"
	}
}
