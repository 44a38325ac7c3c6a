package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenframe/wren/internal/project"
	"github.com/wrenframe/wren/internal/schema"
)

func testGenerator() *Generator {
	return New(project.NewLayout("/tmp/app"), &project.Config{
		Name:      "blog",
		Module:    "github.com/acme/blog",
		APIPrefix: "/api",
	})
}

func mustParse(t *testing.T, name string, specs ...string) *schema.EntityDefinition {
	t.Helper()
	def, err := schema.ParseEntity(name, specs)
	require.NoError(t, err)
	return def
}

func findFile(t *testing.T, files []File, template string) File {
	t.Helper()
	for _, f := range files {
		if f.Template == template {
			return f
		}
	}
	t.Fatalf("no %s in rendered set", template)
	return File{}
}

func TestRenderProducesFullFileSet(t *testing.T) {
	g := testGenerator()
	def := mustParse(t, "Post", "title:string[min=3,searchable]", "body:text")

	files, err := g.Render(def, "20260825120000")
	require.NoError(t, err)
	require.Len(t, files, 5)

	paths := make(map[string]string)
	for _, f := range files {
		paths[f.Template] = f.Path
		assert.Equal(t, "post", f.Entity)
	}
	assert.Equal(t, "internal/models/post.go", paths["model.go.tmpl"])
	assert.Equal(t, "internal/handlers/post.go", paths["handler.go.tmpl"])
	assert.Equal(t, "internal/routes/post.go", paths["routes.go.tmpl"])
	assert.Equal(t, "migrations/20260825120000_create_posts.sql", paths["migration.sql.tmpl"])
	assert.Equal(t, "web/templates/post_form.gohtml", paths["form.gohtml.tmpl"])
}

func TestModelImportsFollowFieldTypes(t *testing.T) {
	g := testGenerator()

	files, err := g.Render(mustParse(t, "Invoice", "amount:decimal", "meta:json"), "20260825120000")
	require.NoError(t, err)
	model := string(findFile(t, files, "model.go.tmpl").Content)

	assert.Contains(t, model, `"encoding/json"`)
	assert.Contains(t, model, `"github.com/shopspring/decimal"`)
	assert.Contains(t, model, "Amount decimal.Decimal")
	assert.Contains(t, model, "Meta json.RawMessage")

	files, err = g.Render(mustParse(t, "Tag", "name:string"), "20260825120001")
	require.NoError(t, err)
	model = string(findFile(t, files, "model.go.tmpl").Content)
	assert.NotContains(t, model, "decimal")
	assert.Contains(t, model, `"github.com/google/uuid"`, "id column always needs uuid")
}

func TestHandlerOmitsEmptySections(t *testing.T) {
	g := testGenerator()

	files, err := g.Render(mustParse(t, "Tag", "name:string"), "20260825120000")
	require.NoError(t, err)
	handler := string(findFile(t, files, "handler.go.tmpl").Content)

	assert.Contains(t, handler, "var tagResource = app.Resource{")
	assert.NotContains(t, handler, "Search:")
	assert.NotContains(t, handler, "Rules:")
	assert.NotContains(t, handler, "Access:")
}

func TestHandlerEncodesRulesAndAccess(t *testing.T) {
	g := testGenerator()
	def := mustParse(t, "User",
		"email:string[email,unique,authenticated]",
		"ssn:string[admin_only]",
		"salary:decimal[roles=hr;finance]",
	)

	files, err := g.Render(def, "20260825120000")
	require.NoError(t, err)
	handler := string(findFile(t, files, "handler.go.tmpl").Content)

	assert.Contains(t, handler, `"email": {"email", "unique"}`)
	assert.Contains(t, handler, `"email": "authenticated"`)
	assert.Contains(t, handler, `"ssn": "admin_only"`)
	assert.Contains(t, handler, `"salary": "roles:hr,finance"`)
}

func TestMigrationColumns(t *testing.T) {
	g := testGenerator()
	def := mustParse(t, "Comment", "body:text", "rating:int?", "post_id:uuid->Post")

	files, err := g.Render(def, "20260825120000")
	require.NoError(t, err)
	migration := string(findFile(t, files, "migration.sql.tmpl").Content)

	assert.Contains(t, migration, "body TEXT NOT NULL")
	assert.Contains(t, migration, "rating INTEGER,")
	assert.Contains(t, migration, "post_id UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE")
	assert.Contains(t, migration, "CREATE INDEX idx_comments_post_id ON comments (post_id);")
}

func TestRenderJunctionIsOrderIndependent(t *testing.T) {
	g := testGenerator()

	a, err := g.RenderJunction("tag", "post", "20260825120000")
	require.NoError(t, err)
	b, err := g.RenderJunction("post", "tag", "20260825120000")
	require.NoError(t, err)

	assert.Equal(t, a[0].Path, b[0].Path)
	assert.Equal(t, "internal/models/post_tag.go", a[0].Path)
	assert.Equal(t, "migrations/20260825120000_create_post_tags.sql", a[1].Path)

	model := string(a[0].Content)
	assert.Contains(t, model, "type PostTag struct {")
	assert.Contains(t, model, "PostID uuid.UUID")
	assert.Contains(t, model, "TagID uuid.UUID")

	migration := string(a[1].Content)
	assert.Contains(t, migration, "CREATE TABLE post_tags (")
	assert.Contains(t, migration, "PRIMARY KEY (post_id, tag_id)")
}

func TestReverseHasManyNaming(t *testing.T) {
	g := testGenerator()

	// Conventional FK: short names.
	injs := g.ReverseHasMany("post", "comment", "post_id")
	require.Len(t, injs, 3)
	assert.Contains(t, injs[0].Block, `var PostComments = Relation{Kind: "has_many", Table: "comments", FK: "post_id"}`)
	assert.Equal(t, "var PostComments ", injs[0].Guard)
	assert.Contains(t, injs[1].Block, "func PostListComments(a *app.App)")
	assert.Contains(t, injs[2].Block, `"GET /api/posts/{id}/comments"`)

	// FK named differently: handler and route carry the key's base.
	injs = g.ReverseHasMany("user", "message", "sender_id")
	require.Len(t, injs, 3)
	assert.Contains(t, injs[1].Block, "func UserListMessagesBySender(a *app.App)")
	assert.Contains(t, injs[2].Block, `"GET /api/users/{id}/messages-by-sender"`)
}

func TestReverseHasManySelfReferentialIsSkipped(t *testing.T) {
	g := testGenerator()
	assert.Nil(t, g.ReverseHasMany("category", "category", "parent_id"))
}

func TestHasManyDeclarationIsModelOnly(t *testing.T) {
	g := testGenerator()

	inj, ok := g.HasManyDeclaration("post", "comment", "post_id")
	require.True(t, ok)

	// Same declaration a later belongs_to on the child would splice, so the
	// guard dedupes the two.
	full := g.ReverseHasMany("post", "comment", "post_id")
	assert.Equal(t, full[0], inj)

	assert.Equal(t, "internal/models/post.go", inj.Path)
	assert.Contains(t, inj.Block, `var PostComments = Relation{Kind: "has_many", Table: "comments", FK: "post_id"}`)
	assert.NotContains(t, inj.Block, "func ")
	assert.NotContains(t, inj.Block, "mux.Handle")

	_, ok = g.HasManyDeclaration("category", "category", "parent_id")
	assert.False(t, ok)
}

func TestManyToManyInjections(t *testing.T) {
	g := testGenerator()

	injs := g.ManyToMany("post", "tag")
	require.Len(t, injs, 3)

	assert.Contains(t, injs[0].Block, `var PostTags = Relation{Kind: "many_to_many", Table: "tags", Junction: "post_tags"}`)
	assert.Contains(t, injs[1].Block, `a.ListViaJunction("tags", "post_tags", "post_id", "tag_id")`)
	assert.Contains(t, injs[1].Block, `a.AttachViaJunction("post_tags", "post_id", "tag_id")`)
	assert.Contains(t, injs[2].Block, `"POST /api/posts/{id}/tags/{related_id}"`)

	// The mirror side shares the junction but swaps the columns.
	mirror := g.ManyToMany("tag", "post")
	assert.Contains(t, mirror[1].Block, `a.ListViaJunction("posts", "post_tags", "tag_id", "post_id")`)
}

func TestAggregatorInjections(t *testing.T) {
	g := testGenerator()

	route := g.RouteRegistration("post")
	assert.Equal(t, "internal/routes/routes.go", route.Path)
	assert.Equal(t, "\tRegisterPostRoutes(mux, a)", route.Block)

	seed := g.SeedEntry("post")
	assert.Equal(t, "internal/app/seed.go", seed.Path)
	assert.Contains(t, seed.Block, `INSERT INTO posts (id)`)
	assert.Equal(t, `{Name: "posts",`, seed.Guard)
}
