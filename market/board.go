package market

import (
	"context"

	goerrors "github.com/goliatone/go-errors"

	"github.com/balumaqsud/artily-client/listing"
)

const articleFields = `
	_id
	articleCategory
	articleStatus
	articleTitle
	articleContent
	articleImage
	articleViews
	articleLikes
	articleComments
	memberId
	createdAt
	updatedAt`

const commentFields = `
	_id
	commentGroup
	commentStatus
	commentContent
	commentRefId
	memberId
	createdAt
	updatedAt`

const getArticlesQuery = `query getArticles($input: ArticlesInquiry!) {
	getArticles(input: $input) {
		list {` + articleFields + `
		}
		totalCount
	}
}`

const getArticleQuery = `query getArticle($articleId: String!) {
	getArticle(articleId: $articleId) {` + articleFields + `
	}
}`

const createArticleMutation = `mutation createArticle($input: ArticleInput!) {
	createArticle(input: $input) {` + articleFields + `
	}
}`

const likeTargetArticleMutation = `mutation likeTargetArticle($articleId: String!) {
	likeTargetArticle(articleId: $articleId) {` + articleFields + `
	}
}`

const getCommentsQuery = `query getComments($input: CommentsInquiry!) {
	getComments(input: $input) {
		list {` + commentFields + `
		}
		totalCount
	}
}`

const createCommentMutation = `mutation createComment($input: CommentInput!) {
	createComment(input: $input) {` + commentFields + `
	}
}`

// ArticleInput creates a community board post.
type ArticleInput struct {
	Category ArticleCategory `json:"articleCategory"`
	Title    string          `json:"articleTitle"`
	Content  string          `json:"articleContent"`
	Image    string          `json:"articleImage,omitempty"`
}

// CommentInput attaches a comment to a product, article, or member page.
type CommentInput struct {
	Group   CommentGroup `json:"commentGroup"`
	Content string       `json:"commentContent"`
	RefID   string       `json:"commentRefId"`
}

// Board exposes the community board operations: articles and their comments.
type Board struct {
	do Doer
}

// NewBoard returns the board service backed by the given transport.
func NewBoard(do Doer) *Board {
	return &Board{do: do}
}

// Articles runs a paginated article query.
func (s *Board) Articles(ctx context.Context, inq listing.Inquiry[ArticlesSearch]) (Page[Article], error) {
	var out struct {
		GetArticles Page[Article] `json:"getArticles"`
	}
	if err := s.do.Do(ctx, "getArticles", getArticlesQuery, inq.Variables(), &out); err != nil {
		return Page[Article]{}, err
	}
	return out.GetArticles, nil
}

// Article fetches a single board post by id.
func (s *Board) Article(ctx context.Context, articleID string) (Article, error) {
	if articleID == "" {
		return Article{}, goerrors.New("article id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		GetArticle Article `json:"getArticle"`
	}
	if err := s.do.Do(ctx, "getArticle", getArticleQuery, map[string]any{"articleId": articleID}, &out); err != nil {
		return Article{}, err
	}
	return out.GetArticle, nil
}

// CreateArticle publishes a board post for the authenticated member.
func (s *Board) CreateArticle(ctx context.Context, input ArticleInput) (Article, error) {
	var out struct {
		CreateArticle Article `json:"createArticle"`
	}
	if err := s.do.Do(ctx, "createArticle", createArticleMutation, map[string]any{"input": input}, &out); err != nil {
		return Article{}, err
	}
	return out.CreateArticle, nil
}

// LikeArticle toggles the caller's like on a board post.
func (s *Board) LikeArticle(ctx context.Context, articleID string) (Article, error) {
	if articleID == "" {
		return Article{}, goerrors.New("article id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		LikeTargetArticle Article `json:"likeTargetArticle"`
	}
	if err := s.do.Do(ctx, "likeTargetArticle", likeTargetArticleMutation, map[string]any{"articleId": articleID}, &out); err != nil {
		return Article{}, err
	}
	return out.LikeTargetArticle, nil
}

// Comments runs a paginated comment query for one target entity.
func (s *Board) Comments(ctx context.Context, inq listing.Inquiry[CommentsSearch]) (Page[Comment], error) {
	if inq.Search.RefID == "" {
		return Page[Comment]{}, goerrors.New("comment target id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		GetComments Page[Comment] `json:"getComments"`
	}
	if err := s.do.Do(ctx, "getComments", getCommentsQuery, inq.Variables(), &out); err != nil {
		return Page[Comment]{}, err
	}
	return out.GetComments, nil
}

// CreateComment attaches a comment to a target entity.
func (s *Board) CreateComment(ctx context.Context, input CommentInput) (Comment, error) {
	if input.RefID == "" {
		return Comment{}, goerrors.New("comment target id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		CreateComment Comment `json:"createComment"`
	}
	if err := s.do.Do(ctx, "createComment", createCommentMutation, map[string]any{"input": input}, &out); err != nil {
		return Comment{}, err
	}
	return out.CreateComment, nil
}
