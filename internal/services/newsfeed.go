package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

var newsFeedSortFields = map[string]string{
	"title":      "title",
	"created_at": "created_at",
}

// NewsFeedService handles article CRUD.
type NewsFeedService struct {
	db      *gorm.DB
	storage *StorageService
}

// NewNewsFeedService creates a new news-feed service.
func NewNewsFeedService(db *gorm.DB, storage *StorageService) *NewsFeedService {
	return &NewsFeedService{db: db, storage: storage}
}

func validateNewsFeed(in *models.NewsFeedInput) map[string][]string {
	v := validate.New()
	v.Require("title", in.Title, "Tiêu đề không được để trống")
	v.MaxLen("title", in.Title, 255, "Tiêu đề tối đa 255 ký tự")
	v.Require("slug", in.Slug, "Slug không được để trống")
	v.Slug("slug", in.Slug, "Slug chỉ gồm chữ thường, số và dấu gạch ngang")
	v.Require("content", in.Content, "Nội dung không được để trống")
	return v.Errors()
}

// GetAll lists articles.
func (s *NewsFeedService) GetAll(ctx context.Context, filter models.NewsFeedFilter, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.NewsFeed{})
	if filter.Keyword != "" {
		q = q.Where("title LIKE ?", contains(filter.Keyword))
	}

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).Error("count news feeds")
			return response.Internal()
		}
	}

	var articles []models.NewsFeed
	err := applyPage(applySort(q, opts, "created_at desc", newsFeedSortFields), opts).
		Find(&articles).Error
	if err != nil {
		logrus.WithError(err).Error("list news feeds")
		return response.Internal()
	}

	return response.List(articles, "", opts.Page, opts.PageSize, total)
}

// GetByID returns one article.
func (s *NewsFeedService) GetByID(ctx context.Context, id uint) *response.Envelope {
	var article models.NewsFeed
	err := s.db.WithContext(ctx).First(&article, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy bài viết")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get news feed")
		return response.Internal()
	}
	return response.Ok(&article, "")
}

// GetBySlug returns one article by its slug.
func (s *NewsFeedService) GetBySlug(ctx context.Context, slug string) *response.Envelope {
	var article models.NewsFeed
	err := s.db.WithContext(ctx).First(&article, "slug = ?", slug).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy bài viết")
	}
	if err != nil {
		logrus.WithError(err).WithField("slug", slug).Error("get news feed by slug")
		return response.Internal()
	}
	return response.Ok(&article, "")
}

// Create validates and persists an article with an optional thumbnail.
func (s *NewsFeedService) Create(ctx context.Context, in *models.NewsFeedInput, thumbnail *UploadFile) *response.Envelope {
	if errs := validateNewsFeed(in); errs != nil {
		return response.Validation(errs)
	}

	if thumbnail != nil {
		url, err := s.storage.Upload(ctx, thumbnail)
		if err != nil {
			logrus.WithError(err).Error("upload news feed thumbnail")
			return response.Internal()
		}
		in.ThumbnailURL = url
	}

	article := models.NewsFeed{
		Slug:         in.Slug,
		Title:        in.Title,
		ThumbnailURL: in.ThumbnailURL,
		Content:      in.Content,
	}
	if err := s.db.WithContext(ctx).Create(&article).Error; err != nil {
		if isDuplicate(err) {
			return response.BadRequest("Slug bài viết đã tồn tại")
		}
		logrus.WithError(err).Error("create news feed")
		return response.Internal()
	}

	return response.Created(&article, "Tạo bài viết thành công")
}

// Update modifies an article, replacing the thumbnail when a new file is
// supplied.
func (s *NewsFeedService) Update(ctx context.Context, id uint, in *models.NewsFeedInput, thumbnail *UploadFile) *response.Envelope {
	if errs := validateNewsFeed(in); errs != nil {
		return response.Validation(errs)
	}

	var article models.NewsFeed
	err := s.db.WithContext(ctx).First(&article, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy bài viết")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get news feed for update")
		return response.Internal()
	}

	if thumbnail != nil {
		url, err := s.storage.Upload(ctx, thumbnail)
		if err != nil {
			logrus.WithError(err).Error("upload news feed thumbnail")
			return response.Internal()
		}
		in.ThumbnailURL = url
	}

	article.Slug = in.Slug
	article.Title = in.Title
	article.Content = in.Content
	if in.ThumbnailURL != "" {
		article.ThumbnailURL = in.ThumbnailURL
	}

	if err := s.db.WithContext(ctx).Save(&article).Error; err != nil {
		if isDuplicate(err) {
			return response.BadRequest("Slug bài viết đã tồn tại")
		}
		logrus.WithError(err).WithField("id", id).Error("update news feed")
		return response.Internal()
	}

	if in.OldThumbnail != "" && in.OldThumbnail != article.ThumbnailURL {
		s.storage.Cleanup(ctx, in.OldThumbnail)
	}

	return response.Ok(&article, "Cập nhật bài viết thành công")
}

// Delete removes an article and returns the deleted record.
func (s *NewsFeedService) Delete(ctx context.Context, id uint) *response.Envelope {
	var article models.NewsFeed
	err := s.db.WithContext(ctx).First(&article, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy bài viết")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get news feed for delete")
		return response.Internal()
	}

	if err := s.db.WithContext(ctx).Delete(&article).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("delete news feed")
		return response.Internal()
	}

	s.storage.Cleanup(ctx, article.ThumbnailURL)

	return response.Ok(&article, "Xóa bài viết thành công")
}
