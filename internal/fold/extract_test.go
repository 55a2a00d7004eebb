package fold

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jfold/internal/parser"
	"jfold/internal/source"
)

func inputOf(t *testing.T, src string) Input {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("Test.java", []byte(src)))
	res := parser.ParseFile(file, parser.Options{})
	require.NotNil(t, res.Tree)
	return Input{File: file, Tree: res.Tree}
}

// region is a line-level view of a candidate or entry.
type region struct {
	Kind        RegionKind
	First, Last uint32
	Owner       string
}

func regionOf(doc *source.File, pos Position, kind RegionKind, owner Owner) region {
	first, last := pos.Lines(doc)
	return region{Kind: kind, First: first, Last: last, Owner: owner.Key}
}

func extract(t *testing.T, in Input, prefs Preferences) []region {
	t.Helper()
	cands, skipped := Extract(in, NewScanner(in.File), prefs, nil, 0)
	require.Zero(t, skipped)
	out := make([]region, 0, len(cands))
	for _, c := range cands {
		out = append(out, regionOf(in.File, c.Position, c.Kind, c.Owner))
	}
	slices.SortStableFunc(out, func(a, b region) int { return int(a.First) - int(b.First) })
	return out
}

func ofKind(rs []region, kind RegionKind) []region {
	var out []region
	for _, r := range rs {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

const ifElseSource = `class A {
    void m() {
        if (c1) {
            s1();
        } else if (c2) {
            s2();
        } else {
            s3();
        }
    }
}
`

func TestIfElseChainYieldsThreeRegions(t *testing.T) {
	rs := extract(t, inputOf(t, ifElseSource), DefaultPreferences())
	assert.Equal(t, []region{
		{RegionStatement, 2, 3, "A#m()/if[0]"},
		{RegionStatement, 4, 5, "A#m()/if[0]/if[0]"},
		{RegionStatement, 6, 8, "A#m()/if[0]/if[0]/else"},
	}, ofKind(rs, RegionStatement))
	assert.Equal(t, []region{{RegionMember, 1, 9, "A#m()"}}, ofKind(rs, RegionMember))
}

func TestLegacyModeFoldsDeclarationsOnly(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.UseStructuralExtraction = false
	rs := extract(t, inputOf(t, ifElseSource), prefs)
	assert.Equal(t, []region{{RegionMember, 1, 9, "A#m()"}}, rs)
}

func TestSwitchRunsFoldToBreak(t *testing.T) {
	rs := extract(t, inputOf(t, `class S {
    void m(int x) {
        switch (x) {
            case 1:
                a();
                break;
            case 2:
                b();
                break;
        }
    }
}
`), DefaultPreferences())
	assert.Equal(t, []region{
		{RegionStatement, 3, 5, "S#m(int)/switch[0]/case[0]"},
		{RegionStatement, 6, 8, "S#m(int)/switch[0]/case[1]"},
	}, ofKind(rs, RegionStatement))
}

func TestLoopsTryAndLambda(t *testing.T) {
	rs := extract(t, inputOf(t, `class L {
    void m() {
        for (int i = 0; i < n; i++)
            step(i);
        while (ok()) {
            spin();
        }
        try {
            run();
        } catch (Exception e) {
            log(e);
        } finally {
            close();
        }
        Runnable r = () -> {
            go();
        };
    }
}
`), DefaultPreferences())
	assert.Equal(t, []region{
		{RegionStatement, 2, 3, "L#m()/for[0]"},
		{RegionStatement, 4, 6, "L#m()/while[0]"},
		{RegionStatement, 7, 8, "L#m()/try[0]"},
		{RegionStatement, 9, 10, "L#m()/try[0]/catch[0]"},
		{RegionStatement, 11, 13, "L#m()/try[0]/finally"},
		{RegionStatement, 14, 16, "L#m()/lambda[0]"},
	}, ofKind(rs, RegionStatement))
}

func TestStatementRegions(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []region
	}{
		{
			name: "do keeps while line visible",
			src: `class L {
    void m() {
        do {
            step();
        } while (x > 0);
    }
}
`,
			want: []region{{RegionStatement, 2, 3, "L#m()/do[0]"}},
		},
		{
			name: "foreach and synchronized",
			src: `class L {
    void m() {
        for (int v : xs) {
            use(v);
        }
        synchronized (this) {
            crit();
        }
    }
}
`,
			want: []region{
				{RegionStatement, 2, 4, "L#m()/foreach[0]"},
				{RegionStatement, 5, 7, "L#m()/synchronized[0]"},
			},
		},
		{
			name: "break inside case block and unterminated tail",
			src: `class S {
    void m(int x) {
        switch (x) {
            case 1: {
                a();
                break;
            }
            case 2:
                b();
            default:
                c();
                // done
        }
    }
}
`,
			want: []region{
				{RegionStatement, 3, 5, "S#m(int)/switch[0]/case[0]"},
				{RegionStatement, 7, 11, "S#m(int)/switch[0]/case[1]"},
			},
		},
		{
			name: "switch expression with yield and arrow block",
			src: `class S {
    int m(int x) {
        int y = switch (x) {
            case 1:
                d();
                yield 1;
            default -> {
                e();
                yield 2;
            }
        };
        return y;
    }
}
`,
			want: []region{
				{RegionStatement, 3, 5, "S#m(int)/switch[0]/case[0]"},
				{RegionStatement, 6, 9, "S#m(int)/switch[0]/case[1]"},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rs := extract(t, inputOf(t, tc.src), DefaultPreferences())
			assert.Equal(t, tc.want, ofKind(rs, RegionStatement))
		})
	}
}

func TestAnonymousAndEnumConstantBodies(t *testing.T) {
	rs := extract(t, inputOf(t, `class P {
    void m() {
        Runnable r = new Runnable() {
            public void run() {
                go();
            }
        };
    }
    enum E {
        A {
            int v() {
                return 1;
            }
        },
        B;
        int v() {
            return 0;
        }
    }
}
`), DefaultPreferences())
	assert.Equal(t, []region{
		{RegionType, 2, 6, "P#m()$1"},
		{RegionType, 8, 18, "P.E"},
		{RegionType, 9, 13, "P.E$1"},
	}, ofKind(rs, RegionType))
}

func TestUnindentedLoopBodyDoesNotFold(t *testing.T) {
	rs := extract(t, inputOf(t, `class L {
    void m() {
        for (int i = 0; i < n; i++)
        step(i);
    }
}
`), DefaultPreferences())
	assert.Empty(t, ofKind(rs, RegionStatement))
}

func TestCommentOwnership(t *testing.T) {
	rs := extract(t, inputOf(t, `/*
 * Header
 */
package p;

import a.B;
import a.C;

/**
 * Doc
 */
class A {
    /**
     * m doc
     */
    void m() {
    }
}
`), DefaultPreferences())
	assert.Equal(t, []region{
		{RegionHeader, 0, 2, "<header>"},
		{RegionImports, 5, 6, "<imports>"},
		{RegionDoc, 8, 10, "A"},
		{RegionDoc, 12, 14, "A#m()"},
		{RegionMember, 15, 16, "A#m()"},
	}, rs)
}

func TestMarkdownDocRunMerges(t *testing.T) {
	rs := extract(t, inputOf(t, `class A {
    /// one
    /// two
    void m() { }
}
`), DefaultPreferences())
	assert.Equal(t, []region{{RegionDoc, 1, 2, "A#m()"}}, rs)
}

func TestOnlyNearestLeadingCommentIsOwned(t *testing.T) {
	rs := extract(t, inputOf(t, `class A {
    /* first
     */
    /** second
     */
    int f;
    /* trailing
     */
}
`), DefaultPreferences())
	assert.Equal(t, []region{
		{RegionComment, 1, 2, ""},
		{RegionDoc, 3, 4, "A.f"},
		{RegionComment, 6, 7, ""},
	}, rs)
}

func TestCustomRegionsPairNested(t *testing.T) {
	rs := extract(t, inputOf(t, `class C {
    // region A
    int a;
    // region B
    int b;
    // endregion
    int c;
    // endregion
}
`), DefaultPreferences())
	assert.Equal(t, []region{
		{RegionCustom, 1, 6, ""},
		{RegionCustom, 3, 4, ""},
	}, rs)
}

func TestUnpairedBeginMarkerYieldsNothing(t *testing.T) {
	rs := extract(t, inputOf(t, `class C {
    // region X
    int a;
    int b;
}
`), DefaultPreferences())
	assert.Empty(t, rs)
}

func TestMarkersDoNotPairAcrossScopes(t *testing.T) {
	rs := extract(t, inputOf(t, `class C {
    // region outer
    void m() {
        // endregion
        x();
    }
}
`), DefaultPreferences())
	assert.Empty(t, ofKind(rs, RegionCustom))
}

func TestOverlapMarkersCloseAtScopeEnd(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.CustomRegionBegin = "region"
	prefs.CustomRegionEnd = "region"
	rs := extract(t, inputOf(t, `class C {
    // region one
    int a;
    int b;
    // region two
    int c;
    int d;
}
`), prefs)
	assert.Equal(t, []region{
		{RegionCustom, 1, 4, ""},
		{RegionCustom, 4, 6, ""},
	}, rs)
}

func TestCustomRegionsDisabledByEmptyMarker(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.CustomRegionEnd = " "
	rs := extract(t, inputOf(t, `class C {
    // region A
    int a;
    // endregion
}
`), prefs)
	assert.Empty(t, rs)
}

func TestEveryCandidateCoversTwoLines(t *testing.T) {
	in := inputOf(t, ifElseSource+"class B { void f() { } int x; /* c */ }\n")
	cands, _ := Extract(in, NewScanner(in.File), DefaultPreferences(), nil, 0)
	require.NotEmpty(t, cands)
	for _, c := range cands {
		first, last := c.Position.Lines(in.File)
		assert.Less(t, first, last, "%+v", c)
		assert.Equal(t, in.File.LineStart(first), c.Position.Offset)
	}
}

func TestOwnerSlotsAreUnique(t *testing.T) {
	in := inputOf(t, "class A {\n  void f() {\n  }\n  void f() {\n  }\n}\n")
	cands, _ := Extract(in, NewScanner(in.File), DefaultPreferences(), nil, 0)
	seen := map[slot]bool{}
	for _, c := range cands {
		if c.Owner.IsZero() {
			continue
		}
		s := slot{owner: c.Owner, comment: c.IsComment}
		assert.False(t, seen[s], "duplicate owner %v", c.Owner)
		seen[s] = true
	}
	assert.Len(t, seen, 2)
}

func TestScanFailureSkipsRangeOnly(t *testing.T) {
	in := inputOf(t, "class A {\n  void f() {\n    x();\n  }\n  /* open\n")
	cands, skipped := Extract(in, NewScanner(in.File), DefaultPreferences(), nil, 0)
	assert.Positive(t, skipped)
	var members int
	for _, c := range cands {
		if c.Kind == RegionMember {
			members++
		}
	}
	assert.Equal(t, 1, members)
}
