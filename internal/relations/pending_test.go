package relations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJunctionNameOrderIndependent(t *testing.T) {
	assert.Equal(t, "post_tag", JunctionName("Post", "Tag"))
	assert.Equal(t, "post_tag", JunctionName("Tag", "Post"))
	assert.Equal(t, "blog_post_tag", JunctionName("Tag", "BlogPost"))
	assert.Equal(t, JunctionName("Course", "Student"), JunctionName("Student", "Course"))
}

func TestJunctionTableName(t *testing.T) {
	assert.Equal(t, "post_tags", JunctionTableName("Post", "Tag"))
	assert.Equal(t, "blog_post_tags", JunctionTableName("Tag", "BlogPost"))
}

func TestPendingAddAndLoad(t *testing.T) {
	store := NewPendingStore(t.TempDir())

	added, err := store.Add("Post", "Tag")
	require.NoError(t, err)
	assert.True(t, added)

	pending, err := store.Load()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, PendingRelation{Source: "Post", Target: "Tag", Kind: KindManyToMany}, pending[0])
}

func TestPendingDedupeByUnorderedPair(t *testing.T) {
	store := NewPendingStore(t.TempDir())

	added, err := store.Add("Post", "Tag")
	require.NoError(t, err)
	assert.True(t, added)

	// Same pair, same direction
	added, err = store.Add("Post", "Tag")
	require.NoError(t, err)
	assert.False(t, added)

	// Same pair, opposite direction: still a duplicate
	added, err = store.Add("Tag", "Post")
	require.NoError(t, err)
	assert.False(t, added)

	pending, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestPendingTakeFor(t *testing.T) {
	store := NewPendingStore(t.TempDir())
	_, err := store.Add("Post", "Tag")
	require.NoError(t, err)
	_, err = store.Add("User", "Role")
	require.NoError(t, err)

	taken, err := store.TakeFor("Tag")
	require.NoError(t, err)
	require.Len(t, taken, 1)
	assert.Equal(t, "Post", taken[0].Source)

	// Tag record is gone, User→Role remains
	pending, err := store.Load()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Role", pending[0].Target)

	// Taking again is empty
	taken, err = store.TakeFor("Tag")
	require.NoError(t, err)
	assert.Empty(t, taken)
}

func TestPendingTakeForSnakeCaseMatch(t *testing.T) {
	store := NewPendingStore(t.TempDir())
	_, err := store.Add("Post", "BlogTag")
	require.NoError(t, err)

	taken, err := store.TakeFor("blog_tag")
	require.NoError(t, err)
	assert.Len(t, taken, 1)
}

func TestPendingRequeue(t *testing.T) {
	store := NewPendingStore(t.TempDir())
	_, err := store.Add("Post", "Tag")
	require.NoError(t, err)

	taken, err := store.TakeFor("Tag")
	require.NoError(t, err)
	require.Len(t, taken, 1)

	require.NoError(t, store.Requeue(taken[0]))
	pending, err := store.Load()
	require.NoError(t, err)
	require.Len(t, pending, 1)

	// Requeueing an already-present pair is a no-op
	require.NoError(t, store.Requeue(taken[0]))
	pending, err = store.Load()
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestPendingMissingDocumentIsEmptyQueue(t *testing.T) {
	store := NewPendingStore(t.TempDir())
	pending, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPendingDocumentOnDisk(t *testing.T) {
	root := t.TempDir()
	store := NewPendingStore(root)
	_, err := store.Add("Post", "Tag")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(root, PendingPath))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "source_entity: Post")
	assert.Contains(t, string(raw), "target_entity: Tag")
	assert.Contains(t, string(raw), "relation_type: many_to_many")
}
