package domain

// UploadKind selects the storage rules applied to an uploaded file.
type UploadKind string

const (
	UploadProfilePicture UploadKind = "profile-picture"
	UploadResume         UploadKind = "resume"
	UploadPostImage      UploadKind = "post-image"
)
