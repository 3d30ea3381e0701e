package forum

// CreatePostParams describes a forum post to create and the context it is
// created in. ExperienceID identifies the forum experience the post lands in;
// UserID and CompanyID are the acting user and company the request is scoped
// to, both required by the remote service.
type CreatePostParams struct {
	ExperienceID     string
	UserID           string
	CompanyID        string
	Title            string
	Content          string
	NotifyAllMembers bool
}

// createPostRequest is the wire shape of a post-creation call. The forum is
// keyed by its experience id; the field name is part of the remote contract
// ("forumId" is not recognized by the API).
type createPostRequest struct {
	ForumExperienceID string `json:"forumExperienceId"`
	Title             string `json:"title"`
	Content           string `json:"content"`
	NotifyAllMembers  bool   `json:"notifyAllMembers"`
}

type createPostResponse struct {
	ID string `json:"id"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
