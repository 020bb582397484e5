package graphql

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedblog/internal/apperr"
	"feedblog/internal/middleware"
	"feedblog/internal/models"
	"feedblog/internal/service"
	"feedblog/internal/validation"
)

// stubAuth and stubFeed return canned results and record what the resolvers
// passed through.
type stubAuth struct {
	token      string
	userID     string
	loginErr   error
	user       *models.User
	status     string
	gotLogin   validation.LoginInput
	gotSignup  validation.SignupInput
	gotStatus  validation.StatusInput
	statusUser string
}

func (s *stubAuth) Signup(ctx context.Context, in validation.SignupInput) (*models.User, error) {
	s.gotSignup = in
	return s.user, nil
}

func (s *stubAuth) Login(ctx context.Context, in validation.LoginInput) (string, string, error) {
	s.gotLogin = in
	return s.token, s.userID, s.loginErr
}

func (s *stubAuth) GetStatus(ctx context.Context, userID string) (string, error) {
	s.statusUser = userID
	return s.status, nil
}

func (s *stubAuth) UpdateStatus(ctx context.Context, userID string, in validation.StatusInput) (string, error) {
	s.statusUser = userID
	s.gotStatus = in
	return in.Status, nil
}

type stubFeed struct {
	posts        []models.Post
	total        int
	post         *models.Post
	gotPage      int
	gotCreatorID string
	gotImageURL  string
	gotPostID    string
	deleted      bool
}

func (s *stubFeed) ListPosts(ctx context.Context, page int) ([]models.Post, int, error) {
	s.gotPage = page
	return s.posts, s.total, nil
}

func (s *stubFeed) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	s.gotPostID = postID
	if s.post == nil {
		return nil, apperr.New(apperr.NotFound, "post not found")
	}
	return s.post, nil
}

func (s *stubFeed) StoreImage(ctx context.Context, image *service.ImageUpload) (string, error) {
	return "", nil
}

func (s *stubFeed) CreatePost(ctx context.Context, creatorID string, in validation.PostInput, image *service.ImageUpload) (*models.Post, error) {
	return s.post, nil
}

func (s *stubFeed) CreatePostFromURL(ctx context.Context, creatorID string, in validation.PostInput, imageURL string) (*models.Post, error) {
	s.gotCreatorID = creatorID
	s.gotImageURL = imageURL
	return s.post, nil
}

func (s *stubFeed) UpdatePost(ctx context.Context, requesterID, postID string, in validation.PostInput, image *service.ImageUpload) (*models.Post, error) {
	return s.post, nil
}

func (s *stubFeed) UpdatePostFromURL(ctx context.Context, requesterID, postID string, in validation.PostInput, imageURL string) (*models.Post, error) {
	s.gotCreatorID = requesterID
	s.gotPostID = postID
	s.gotImageURL = imageURL
	return s.post, nil
}

func (s *stubFeed) DeletePost(ctx context.Context, requesterID, postID string) error {
	s.gotCreatorID = requesterID
	s.gotPostID = postID
	s.deleted = true
	return nil
}

func newTestSchema(t *testing.T, auth *stubAuth, feed *stubFeed) graphql.Schema {
	t.Helper()

	schema, err := NewSchema(&service.Service{Auth: auth, Feed: feed})
	require.NoError(t, err)
	return schema
}

func execute(schema graphql.Schema, ctx context.Context, query string) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       ctx,
	})
}

func authedCtx(userID, email string) context.Context {
	return middleware.WithIdentity(context.Background(), &service.Identity{UserID: userID, Email: email})
}

func TestSchema_Login(t *testing.T) {
	auth := &stubAuth{token: "signed.jwt.token", userID: "user-123"}
	schema := newTestSchema(t, auth, &stubFeed{})

	result := execute(schema, context.Background(),
		`{ login(email: "ann@example.com", password: "secret") { token userId } }`)

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})["login"].(map[string]interface{})
	assert.Equal(t, "signed.jwt.token", data["token"])
	assert.Equal(t, "user-123", data["userId"])
	assert.Equal(t, "ann@example.com", auth.gotLogin.Email)
}

func TestSchema_Posts(t *testing.T) {
	feed := &stubFeed{
		posts: []models.Post{
			{PostID: "p1", Title: "First", CreatorID: "user-a", CreatorName: "Ann"},
			{PostID: "p2", Title: "Second", CreatorID: "user-b", CreatorName: "Bob"},
		},
		total: 5,
	}
	schema := newTestSchema(t, &stubAuth{}, feed)

	result := execute(schema, context.Background(),
		`{ posts(page: 2) { totalItems posts { _id title creator { _id name } } } }`)

	require.Empty(t, result.Errors)
	assert.Equal(t, 2, feed.gotPage)

	data := result.Data.(map[string]interface{})["posts"].(map[string]interface{})
	assert.Equal(t, 5, data["totalItems"])

	posts := data["posts"].([]interface{})
	require.Len(t, posts, 2)

	first := posts[0].(map[string]interface{})
	assert.Equal(t, "p1", first["_id"])
	assert.Equal(t, "First", first["title"])

	creator := first["creator"].(map[string]interface{})
	assert.Equal(t, "user-a", creator["_id"])
	assert.Equal(t, "Ann", creator["name"])
}

func TestSchema_PostsDefaultsPage(t *testing.T) {
	feed := &stubFeed{}
	schema := newTestSchema(t, &stubAuth{}, feed)

	result := execute(schema, context.Background(), `{ posts { totalItems } }`)

	require.Empty(t, result.Errors)
	assert.Equal(t, 1, feed.gotPage)
}

func TestSchema_CreatePostRequiresAuth(t *testing.T) {
	feed := &stubFeed{}
	schema := newTestSchema(t, &stubAuth{}, feed)

	result := execute(schema, context.Background(),
		`mutation { createPost(postInput: {title: "A post", content: "Body", imageUrl: "http://img/1"}) { _id } }`)

	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "Not authenticated.")
	assert.Empty(t, feed.gotCreatorID)
}

func TestSchema_CreatePost(t *testing.T) {
	feed := &stubFeed{
		post: &models.Post{PostID: "post-1", CreatorID: "user-a", Title: "A post", ImageURL: "http://img/1"},
	}
	schema := newTestSchema(t, &stubAuth{}, feed)

	result := execute(schema, authedCtx("user-a", "ann@example.com"),
		`mutation { createPost(postInput: {title: "A post", content: "Body", imageUrl: "http://img/1"}) { _id imageUrl } }`)

	require.Empty(t, result.Errors)
	assert.Equal(t, "user-a", feed.gotCreatorID)
	assert.Equal(t, "http://img/1", feed.gotImageURL)

	data := result.Data.(map[string]interface{})["createPost"].(map[string]interface{})
	assert.Equal(t, "post-1", data["_id"])
	assert.Equal(t, "http://img/1", data["imageUrl"])
}

func TestSchema_DeletePost(t *testing.T) {
	feed := &stubFeed{}
	schema := newTestSchema(t, &stubAuth{}, feed)

	result := execute(schema, authedCtx("user-a", "ann@example.com"),
		`mutation { deletePost(id: "post-1") }`)

	require.Empty(t, result.Errors)
	assert.True(t, feed.deleted)
	assert.Equal(t, "user-a", feed.gotCreatorID)
	assert.Equal(t, "post-1", feed.gotPostID)

	data := result.Data.(map[string]interface{})
	assert.Equal(t, true, data["deletePost"])
}

func TestSchema_User(t *testing.T) {
	auth := &stubAuth{status: "I am new!"}
	schema := newTestSchema(t, auth, &stubFeed{})

	result := execute(schema, authedCtx("user-123", "ann@example.com"),
		`{ user { _id email status } }`)

	require.Empty(t, result.Errors)
	assert.Equal(t, "user-123", auth.statusUser)

	data := result.Data.(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "user-123", data["_id"])
	assert.Equal(t, "ann@example.com", data["email"])
	assert.Equal(t, "I am new!", data["status"])
}

func TestSchema_UpdateStatus(t *testing.T) {
	auth := &stubAuth{}
	schema := newTestSchema(t, auth, &stubFeed{})

	result := execute(schema, authedCtx("user-123", "ann@example.com"),
		`mutation { updateStatus(status: "Shipping it") { status } }`)

	require.Empty(t, result.Errors)
	assert.Equal(t, "Shipping it", auth.gotStatus.Status)

	data := result.Data.(map[string]interface{})["updateStatus"].(map[string]interface{})
	assert.Equal(t, "Shipping it", data["status"])
}
