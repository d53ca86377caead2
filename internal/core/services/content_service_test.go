package services_test

import (
	"context"
	"testing"
	"time"

	"y4d-cms/internal/core/domain"
	"y4d-cms/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contentFixture struct {
	banners  *stubBannerRepo
	posts    *stubPostRepo
	programs *stubProgramRepo
	team     *stubTeamRepo
	svc      *services.ContentService
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()
	f := &contentFixture{
		banners:  newStubBannerRepo(),
		posts:    newStubPostRepo(),
		programs: newStubProgramRepo(),
		team:     newStubTeamRepo(),
	}
	f.svc = services.NewContentService(f.banners, f.posts, f.programs, f.team)
	return f
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Clean Water For All", "clean-water-for-all"},
		{"  Annual Report 2025  ", "annual-report-2025"},
		{"Girls' Education: Phase II", "girls-education-phase-ii"},
		{"???", ""},
		{"already-a-slug", "already-a-slug"},
		{"Mixed   WHITESPACE\tand\ncase", "mixed-whitespace-and-case"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, services.Slugify(c.title), c.title)
	}
}

func TestCreatePostGeneratesSlug(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, &services.PostInput{
		Type:  "blog",
		Title: "Clean Water For All",
	}, 7)
	require.NoError(t, err)

	assert.Equal(t, "clean-water-for-all", post.Slug)
	assert.Equal(t, uint(7), post.AuthorID)
	assert.False(t, post.IsPublished)
	assert.Nil(t, post.PublishedAt)
}

func TestCreatePostRejectsDuplicateSlug(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreatePost(ctx, &services.PostInput{Type: "blog", Title: "Clean Water"}, 1)
	require.NoError(t, err)

	// Same title slugifies to the same value.
	_, err = f.svc.CreatePost(ctx, &services.PostInput{Type: "event", Title: "Clean Water"}, 1)
	assert.ErrorIs(t, err, services.ErrDuplicateSlug)

	// Explicit slug collision is caught too.
	_, err = f.svc.CreatePost(ctx, &services.PostInput{Type: "story", Title: "Other", Slug: "clean-water"}, 1)
	assert.ErrorIs(t, err, services.ErrDuplicateSlug)
}

func TestCreatePostInvalidType(t *testing.T) {
	f := newContentFixture(t)

	_, err := f.svc.CreatePost(context.Background(), &services.PostInput{Type: "podcast", Title: "Nope"}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdatePostSlugChangeChecked(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreatePost(ctx, &services.PostInput{Type: "blog", Title: "First Post"}, 1)
	require.NoError(t, err)
	second, err := f.svc.CreatePost(ctx, &services.PostInput{Type: "blog", Title: "Second Post"}, 1)
	require.NoError(t, err)

	// Moving onto another post's slug is refused.
	_, err = f.svc.UpdatePost(ctx, second.ID, &services.PostInput{Type: "blog", Title: "Second Post", Slug: first.Slug})
	assert.ErrorIs(t, err, services.ErrDuplicateSlug)

	// Keeping the current slug is not treated as a collision.
	updated, err := f.svc.UpdatePost(ctx, second.ID, &services.PostInput{Type: "blog", Title: "Second Post, Revised", Slug: second.Slug})
	require.NoError(t, err)
	assert.Equal(t, "second-post", updated.Slug)
	assert.Equal(t, "Second Post, Revised", updated.Title)
}

func TestPublishSetsPublishedAtOnce(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, &services.PostInput{Type: "newsletter", Title: "August Update"}, 1)
	require.NoError(t, err)

	published, err := f.svc.SetPostPublished(ctx, post.ID, true)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	assert.True(t, published.IsPublished)
	firstPublish := *published.PublishedAt

	// Unpublish keeps the timestamp.
	hidden, err := f.svc.SetPostPublished(ctx, post.ID, false)
	require.NoError(t, err)
	assert.False(t, hidden.IsPublished)
	require.NotNil(t, hidden.PublishedAt)
	assert.True(t, hidden.PublishedAt.Equal(firstPublish))

	// Republish does not reset it either.
	time.Sleep(5 * time.Millisecond)
	again, err := f.svc.SetPostPublished(ctx, post.ID, true)
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.True(t, again.PublishedAt.Equal(firstPublish))
}

func TestGetPostBySlugHidesDrafts(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, &services.PostInput{Type: "story", Title: "Field Story"}, 1)
	require.NoError(t, err)

	// Drafts are invisible to public callers but visible internally.
	_, err = f.svc.GetPostBySlug(ctx, post.Slug, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	draft, err := f.svc.GetPostBySlug(ctx, post.Slug, false)
	require.NoError(t, err)
	assert.Equal(t, post.ID, draft.ID)

	_, err = f.svc.SetPostPublished(ctx, post.ID, true)
	require.NoError(t, err)

	public, err := f.svc.GetPostBySlug(ctx, post.Slug, true)
	require.NoError(t, err)
	assert.Equal(t, post.ID, public.ID)
}

func TestListPostsFiltersAndPaginates(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	for _, title := range []string{"Blog One", "Blog Two", "Blog Three"} {
		post, err := f.svc.CreatePost(ctx, &services.PostInput{Type: "blog", Title: title}, 1)
		require.NoError(t, err)
		_, err = f.svc.SetPostPublished(ctx, post.ID, true)
		require.NoError(t, err)
	}
	_, err := f.svc.CreatePost(ctx, &services.PostInput{Type: "event", Title: "Draft Event"}, 1)
	require.NoError(t, err)

	out, err := f.svc.ListPosts(ctx, &services.ListPostsInput{Type: "blog", PublishedOnly: true, Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
	assert.Len(t, out.Posts, 2)
	assert.Equal(t, 2, out.TotalPages)

	_, err = f.svc.ListPosts(ctx, &services.ListPostsInput{Type: "podcast"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateProgramRejectsDuplicateSlug(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateProgram(ctx, &services.ProgramInput{Title: "Skill Development"})
	require.NoError(t, err)

	_, err = f.svc.CreateProgram(ctx, &services.ProgramInput{Title: "Skill Development"})
	assert.ErrorIs(t, err, services.ErrDuplicateSlug)
}

func TestProgramPublishedVisibility(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	hidden, err := f.svc.CreateProgram(ctx, &services.ProgramInput{Title: "Hidden Program"})
	require.NoError(t, err)
	_, err = f.svc.CreateProgram(ctx, &services.ProgramInput{Title: "Live Program", IsPublished: true})
	require.NoError(t, err)

	public, err := f.svc.ListPrograms(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "live-program", public[0].Slug)

	all, err := f.svc.ListPrograms(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.GetProgramBySlug(ctx, hidden.Slug, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBannerPublishedList(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBanner(ctx, &services.BannerInput{Title: "Second", ImageURL: "/b2.jpg", SortOrder: 2, IsPublished: true})
	require.NoError(t, err)
	_, err = f.svc.CreateBanner(ctx, &services.BannerInput{Title: "First", ImageURL: "/b1.jpg", SortOrder: 1, IsPublished: true})
	require.NoError(t, err)
	_, err = f.svc.CreateBanner(ctx, &services.BannerInput{Title: "Draft", ImageURL: "/b3.jpg", SortOrder: 0})
	require.NoError(t, err)

	public, err := f.svc.ListBanners(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, "First", public[0].Title)
	assert.Equal(t, "Second", public[1].Title)

	all, err := f.svc.ListBanners(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTeamMemberTypeValidation(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateTeamMember(ctx, &services.TeamMemberInput{Type: "intern", Name: "Nobody"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	member, err := f.svc.CreateTeamMember(ctx, &services.TeamMemberInput{Type: "mentor", Name: "Asha Rao", IsActive: true})
	require.NoError(t, err)

	_, err = f.svc.ListTeamMembers(ctx, "staff", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	mentors, err := f.svc.ListTeamMembers(ctx, "mentor", true)
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, member.ID, mentors[0].ID)
}
