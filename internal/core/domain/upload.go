package domain

import "errors"

// Avatar upload failure modes. The image host itself is an external
// collaborator; these cover everything checked before delegating to it.
var ErrAvatarRequired = errors.New("please upload a file")
var ErrImageTooLarge = errors.New("image exceeds the maximum upload size")
var ErrUnsupportedImageType = errors.New("unsupported image type")
var ErrUploadsUnavailable = errors.New("avatar uploads are not available")
