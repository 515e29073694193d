package ticket

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hnp/internal/core/annotation"
	"github.com/example/hnp/internal/core/catalog"
	"github.com/example/hnp/internal/core/document"
)

const (
	bugsID    catalog.ID = 1
	featureID catalog.ID = 2
	progID    catalog.ID = 3
	uiTagID   catalog.ID = 10
	dupTagID  catalog.ID = 11
	aliceID   catalog.ID = 20
	bobID     catalog.ID = 21
	normalID  catalog.ID = 30
	highID    catalog.ID = 31
)

func testSnapshot() catalog.Snapshot {
	return catalog.Snapshot{
		Categories: []catalog.Category{
			{ID: bugsID, Name: "bugs"},
			{ID: featureID, Name: "feature"},
			{ID: progID, Name: "Programming"},
		},
		Tags: []catalog.Tag{
			{ID: uiTagID, Name: "UI"},
			{ID: dupTagID, Name: "Feature"},
		},
		Users: []catalog.User{
			{ID: aliceID, Name: "alice", Username: "alice1"},
			{ID: bobID, Name: "Bob", Username: "bob92"},
		},
		ImportanceLevels: []catalog.ImportanceLevel{
			{ID: normalID, Name: "Normal", IsDefault: true},
			{ID: highID, Name: "high"},
		},
	}
}

func buildDoc(t *testing.T, doc string, opts Options) ([]*Draft, error) {
	t.Helper()
	blocks, err := document.Split(doc)
	require.NoError(t, err)
	return NewBuilder(annotation.New(), testSnapshot(), opts).BuildAll(blocks)
}

func TestBuilder_EndToEnd(t *testing.T) {
	doc := "Fix bug #bugs @alice ~2h !high\n===\nDetails here\n[] write test\n---\nSecond ticket #feature"

	drafts, err := buildDoc(t, doc, Options{})
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	want := []*Draft{
		{
			Title:             "Fix bug",
			Description:       "Details here",
			CategoryID:        bugsID,
			EstimatedCost:     2.0,
			ImportanceLevelID: highID,
			AssignedUserIDs:   []catalog.ID{aliceID},
			TagIDs:            []catalog.ID{},
			SubTasks:          []string{"write test"},
			DependencyIDs:     []catalog.ID{},
			Block:             1,
		},
		{
			Title:             "Second ticket",
			Description:       "",
			CategoryID:        featureID,
			ImportanceLevelID: normalID,
			AssignedUserIDs:   []catalog.ID{},
			TagIDs:            []catalog.ID{},
			SubTasks:          []string{},
			DependencyIDs:     []catalog.ID{},
			Block:             2,
		},
	}
	if diff := cmp.Diff(want, drafts); diff != "" {
		t.Errorf("drafts mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_CategoryPrecedenceAndTags(t *testing.T) {
	drafts, err := buildDoc(t, "Polish #Feature #ui #UI #unknown", Options{})
	require.NoError(t, err)

	d := drafts[0]
	assert.Equal(t, featureID, d.CategoryID, "category wins over tag with same name")
	assert.Equal(t, []catalog.ID{uiTagID}, d.TagIDs, "tags are de-duplicated")
	assert.Equal(t, "Polish", d.Title)
	assert.NotContains(t, d.Title, "#Feature")
}

func TestBuilder_FirstCategoryWins(t *testing.T) {
	drafts, err := buildDoc(t, "Two categories #bugs #feature", Options{})
	require.NoError(t, err)
	assert.Equal(t, bugsID, drafts[0].CategoryID)
}

func TestBuilder_DefaultCategory(t *testing.T) {
	drafts, err := buildDoc(t, "No category here\n---\nHas one #bugs", Options{DefaultCategory: "programming"})
	require.NoError(t, err)

	assert.Equal(t, progID, drafts[0].CategoryID)
	assert.Equal(t, "No category here", drafts[0].Title)
	assert.Equal(t, bugsID, drafts[1].CategoryID, "explicit category comes before the appended default")
}

func TestBuilder_MissingCategory(t *testing.T) {
	_, err := buildDoc(t, "Fine #bugs\n---\nOrphan #ui", Options{})
	require.ErrorIs(t, err, ErrMissingCategory)
	assert.Contains(t, err.Error(), "ticket 2")
	assert.Contains(t, err.Error(), `"Orphan"`)
}

func TestBuilder_UnknownMention(t *testing.T) {
	_, err := buildDoc(t, "Pair #bugs @carol", Options{})
	require.ErrorIs(t, err, catalog.ErrUnknownUser)
	assert.Contains(t, err.Error(), "@carol")

	_, err = buildDoc(t, "Pair #bugs\n===\nask @carol", Options{})
	require.ErrorIs(t, err, catalog.ErrUnknownUser)
	assert.Contains(t, err.Error(), "description")
}

func TestBuilder_ImportanceErrors(t *testing.T) {
	_, err := buildDoc(t, "Panic #bugs !meltdown", Options{})
	require.ErrorIs(t, err, catalog.ErrUnknownImportance)

	snap := testSnapshot()
	snap.ImportanceLevels = []catalog.ImportanceLevel{{ID: highID, Name: "high"}}
	blocks, err := document.Split("Calm #bugs")
	require.NoError(t, err)

	_, err = NewBuilder(annotation.New(), snap, Options{}).BuildAll(blocks)
	require.ErrorIs(t, err, catalog.ErrNoDefaultImportance)
}

func TestBuilder_DescriptionRewrite(t *testing.T) {
	doc := "Chores #bugs @bo @alice @BOB\n===\nping @bo\n[] Buy milk\n[]Feed cat @alice\nthanks"

	drafts, err := buildDoc(t, doc, Options{})
	require.NoError(t, err)

	d := drafts[0]
	assert.Equal(t, []catalog.ID{bobID, aliceID}, d.AssignedUserIDs)
	assert.Equal(t, []string{"Buy milk", "Feed cat @alice1"}, d.SubTasks)
	assert.True(t, strings.HasPrefix(d.Description, "ping @bob92"), d.Description)
	assert.NotContains(t, d.Description, "Buy milk")
	assert.NotContains(t, d.Description, "Feed cat")
	assert.True(t, strings.HasSuffix(d.Description, "thanks"), d.Description)
}

func TestBuilder_SubTasksOnlyFromDescription(t *testing.T) {
	drafts, err := buildDoc(t, "[] looks like a task #bugs", Options{})
	require.NoError(t, err)
	assert.Empty(t, drafts[0].SubTasks)
	assert.Equal(t, "[] looks like a task", drafts[0].Title)
}

func TestDraft_JSONPayload(t *testing.T) {
	drafts, err := buildDoc(t, "Second ticket #feature", Options{})
	require.NoError(t, err)

	data, err := json.Marshal(drafts[0])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))

	for _, key := range []string{
		"title", "description", "parentId", "isStory", "categoryId", "estimatedCost",
		"importanceLevelId", "boardId", "startDate", "dueDate", "assignedUserIds",
		"tagIds", "subTasks", "dependencyIds",
	} {
		assert.Contains(t, payload, key)
	}
	assert.NotContains(t, payload, "Block")
	assert.Equal(t, []any{}, payload["dependencyIds"])
	assert.Equal(t, []any{}, payload["tagIds"])
}

func TestCollectUnmatchedTags(t *testing.T) {
	g := annotation.New()
	blocks := []document.Block{
		{Number: 1, Title: "#Foo #bar", Description: "#ignored in description"},
		{Number: 2, Title: "#BAR #baz"},
		{Number: 3, Title: "known #bugs #ui"},
	}

	got, err := CollectUnmatchedTags(g, testSnapshot().HashTags(), blocks)
	require.NoError(t, err)
	assert.Equal(t, []string{"bar", "baz", "foo"}, got)

	got, err = CollectUnmatchedTags(g, testSnapshot().HashTags(), blocks[2:])
	require.NoError(t, err)
	assert.Empty(t, got)
}
