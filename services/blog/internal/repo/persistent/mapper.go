package persistent

import (
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Username:  m.Username,
		AvatarURL: m.AvatarURL,
		Bio:       m.Bio,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toAuthorEntity keeps only the columns the public listings embed.
func toAuthorEntity(m *model.UserModel, withBio bool) *entity.User {
	if m == nil {
		return nil
	}

	author := &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		AvatarURL: m.AvatarURL,
	}
	if withBio {
		author.Bio = m.Bio
	}
	return author
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:        m.ID,
		AuthorID:  m.AuthorID,
		Title:     m.Title,
		Content:   m.Content,
		Excerpt:   m.Excerpt,
		CoverURL:  m.CoverURL,
		Status:    entity.PostStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Author:    toAuthorEntity(m.Author, true),
	}
}

func ToPostEntities(models []*model.PostModel) []*entity.Post {
	posts := make([]*entity.Post, len(models))
	for i, m := range models {
		posts[i] = ToPostEntity(m)
	}
	return posts
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		User:      toAuthorEntity(m.User, false),
	}
}

// postUpdates lists the columns a PostInput sets.
func postUpdates(in entity.PostInput) map[string]interface{} {
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.Excerpt != nil {
		updates["excerpt"] = *in.Excerpt
	}
	if in.CoverURL != nil {
		updates["cover_url"] = *in.CoverURL
	}
	if in.Status != nil {
		updates["status"] = string(*in.Status)
	}
	return updates
}

func profileUpdates(in entity.ProfileInput) map[string]interface{} {
	updates := map[string]interface{}{}
	if in.Username != nil {
		updates["username"] = *in.Username
	}
	if in.AvatarURL != nil {
		updates["avatar_url"] = *in.AvatarURL
	}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
	}
	return updates
}
