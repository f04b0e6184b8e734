package document_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/build-api/internal/errors"
	"github.com/KirkDiggler/build-api/internal/repositories/document"
	"github.com/KirkDiggler/build-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr   *miniredis.Miniredis
	repo document.Repository
	ctx  context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.ctx = context.Background()

	repo, err := document.NewRedisRepository(&document.Config{Client: client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	doc := testutils.LoadSampleDocument(s.T())
	doc.ID = "doc_123"

	_, err := s.repo.Create(s.ctx, document.CreateInput{Document: doc})
	s.Require().NoError(err)
	s.True(s.mr.Exists("document:doc_123"))
	s.Equal(0, int(s.mr.TTL("document:doc_123")), "documents do not expire")

	output, err := s.repo.Get(s.ctx, document.GetInput{ID: "doc_123"})
	s.Require().NoError(err)
	s.Equal(doc.Title, output.Document.Title)
	s.Equal(doc.Points.Values, output.Document.Points.Values)
	s.Require().Len(output.Document.Categories, len(doc.Categories))
	s.Equal(doc.Categories[2].RequiresOption, output.Document.Categories[2].RequiresOption)
	s.Equal(doc.Categories[1].Options[1].Cap(), output.Document.Categories[1].Options[1].Cap())
}

func (s *RedisRepositoryTestSuite) TestCreate_Validation() {
	_, err := s.repo.Create(s.ctx, document.CreateInput{})
	s.True(errors.IsInvalidArgument(err))

	doc := testutils.LoadSampleDocument(s.T())
	_, err = s.repo.Create(s.ctx, document.CreateInput{Document: doc})
	s.True(errors.IsInvalidArgument(err), "documents need an ID before storage")
}

func (s *RedisRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, document.GetInput{ID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestListAndDelete() {
	for _, id := range []string{"b", "a", "c"} {
		doc := testutils.LoadSampleDocument(s.T())
		doc.ID = id
		_, err := s.repo.Create(s.ctx, document.CreateInput{Document: doc})
		s.Require().NoError(err)
	}

	list, err := s.repo.List(s.ctx, document.ListInput{})
	s.Require().NoError(err)
	s.Equal([]string{"a", "b", "c"}, list.IDs)

	_, err = s.repo.Delete(s.ctx, document.DeleteInput{ID: "b"})
	s.Require().NoError(err)

	list, err = s.repo.List(s.ctx, document.ListInput{})
	s.Require().NoError(err)
	s.Equal([]string{"a", "c"}, list.IDs)

	_, err = s.repo.Delete(s.ctx, document.DeleteInput{ID: "b"})
	s.True(errors.IsNotFound(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
