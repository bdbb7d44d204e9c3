package books

import "studykit/pkg/query"

var projection = query.NewProjectionMap("public", "books", "b").
	Join("JOIN public.users u ON u.id = b.user_id").
	Project("id", "Id").
	Project("title", "Title").
	Project("caption", "Caption").
	Project("rating", "Rating").
	Project("image_key", "ImageKey").
	Project("user_id", "UserId").
	ProjectJoined("u", "username", "AuthorUsername").
	ProjectJoined("u", "profile_image", "AuthorProfileImage").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")
