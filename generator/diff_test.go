package generator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixed width keeps the output independent of the test terminal
func testDiff() *DiffGenerator {
	return &DiffGenerator{width: 100}
}

func TestGenerateDiffIdenticalIsEmpty(t *testing.T) {
	g := testDiff()
	assert.Empty(t, g.GenerateDiffDefault("a.go", "a.go", []byte("same\n"), []byte("same\n")))
}

func TestGenerateDiffAddedLine(t *testing.T) {
	g := testDiff()
	local := []byte("line one\nline two\n")
	fresh := []byte("line one\nline two\nline three\n")

	out := g.GenerateDiffDefault("routes.go", "routes.go", local, fresh)
	assert.Contains(t, out, "--- routes.go")
	assert.Contains(t, out, "+++ routes.go")
	assert.Contains(t, out, "+line three")
	assert.NotContains(t, out, "-line")
}

func TestGenerateDiffRemovedLine(t *testing.T) {
	g := testDiff()
	local := []byte("keep\ndrop me\nkeep too\n")
	fresh := []byte("keep\nkeep too\n")

	out := g.GenerateDiffDefault("f.txt", "f.txt", local, fresh)
	assert.Contains(t, out, "-drop me")
	assert.Contains(t, out, " keep too")
}

func TestGenerateDiffChangedLine(t *testing.T) {
	g := testDiff()
	local := []byte("name: blog\nprefix: /api\n")
	fresh := []byte("name: blog\nprefix: /v2\n")

	out := g.GenerateDiffDefault("wren.yml", "wren.yml", local, fresh)
	assert.Contains(t, out, "@@ -1,2 +1,2 @@")
	assert.Contains(t, out, " name: blog")
	assert.Contains(t, out, "-prefix: /api")
	assert.Contains(t, out, "+prefix: /v2")
}

func TestGenerateDiffFromEmpty(t *testing.T) {
	out := testDiff().GenerateDiffDefault("new.go", "new.go", nil, []byte("package routes\n"))
	assert.Contains(t, out, "@@ -0,0 +1,1 @@")
	assert.Contains(t, out, "+package routes")
}

func TestGenerateDiffSplitsDistantChangesIntoHunks(t *testing.T) {
	g := testDiff()
	var local, fresh []string
	for i := 1; i <= 30; i++ {
		local = append(local, fmt.Sprintf("line %d", i))
		fresh = append(fresh, fmt.Sprintf("line %d", i))
	}
	fresh[0] = "changed first"
	fresh[29] = "changed last"

	out := g.GenerateDiffDefault("f.txt", "f.txt",
		[]byte(strings.Join(local, "\n")+"\n"),
		[]byte(strings.Join(fresh, "\n")+"\n"))

	assert.Equal(t, 2, strings.Count(out, "@@ -"), "distant changes get separate hunks")
	assert.Contains(t, out, "+changed first")
	assert.Contains(t, out, "+changed last")
	assert.NotContains(t, out, "line 10", "middle context stays out of both hunks")
}

func TestGenerateDiffMergesNearbyChanges(t *testing.T) {
	g := testDiff()
	local := []byte("a\nb\nc\nd\ne\n")
	fresh := []byte("A\nb\nc\nd\nE\n")

	out := g.GenerateDiffDefault("f.txt", "f.txt", local, fresh)
	assert.Equal(t, 1, strings.Count(out, "@@ -"), "changes within shared context share a hunk")
}

func TestGenerateDiffExpandsTabs(t *testing.T) {
	g := testDiff()
	out := g.GenerateDiff("f.go", "f.go", []byte("a\n"), []byte("a\n\tindented\n"),
		DiffOptions{TabWidth: 4})
	assert.Contains(t, out, "+    indented")
}

func TestGenerateDiffLineNumbers(t *testing.T) {
	g := testDiff()
	out := g.GenerateDiff("f.txt", "f.txt", []byte("one\ntwo\n"), []byte("one\nTWO\n"),
		DiffOptions{ShowLineNums: true})
	assert.Contains(t, out, "-   2")
	assert.Contains(t, out, " 2 TWO")
}

func TestGenerateDiffBinaryContent(t *testing.T) {
	g := testDiff()
	out := g.GenerateDiffDefault("logo.png", "logo.png", []byte{0x89, 0x00, 0x01}, []byte("text\n"))
	assert.Contains(t, out, "binary content differs (3 -> 5 bytes)")
}

func TestGenerateDiffTruncatesToWidth(t *testing.T) {
	g := &DiffGenerator{width: 20}
	long := strings.Repeat("x", 60)

	out := g.GenerateDiffDefault("f.txt", "f.txt", []byte("a\n"), []byte("a\n"+long+"\n"))
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 20)
	}
	assert.Contains(t, out, "…")
}
