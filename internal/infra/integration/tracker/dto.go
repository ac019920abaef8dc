package tracker

type Issue struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	State      string   `json:"state"`
	AssigneeID string   `json:"assignee_id,omitempty"`
	Labels     []string `json:"labels,omitempty"`
}

type listIssuesResponse struct {
	Issues     []Issue `json:"issues"`
	NextCursor string  `json:"next_cursor"`
}

type createIssueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type issueResponse struct {
	Issue Issue `json:"issue"`
}

type updateIssueRequest struct {
	AssigneeID string `json:"assignee_id"`
}

type addLabelRequest struct {
	Label string `json:"label"`
}

type commentRequest struct {
	Body string `json:"body"`
}
