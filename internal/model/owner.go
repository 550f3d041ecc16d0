package model

// Owner is a user able to own videos and channels. Hashkey is stable for
// the owner's lifetime and names the directory holding their videos.
type Owner struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Hashkey  string `json:"hashkey"`
}

// Group is a set of users a video's access can be restricted to.
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
