package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/three-level-auth/internal/model"
)

// Multipart variants of the facial factor.  The form carries user_id and the
// raw image in a "file" part.

var (
	errMissingFile    = errors.New("file is required")
	errUnreadableFile = errors.New("unreadable file")
)

// UploadRegister: POST /facial-register/.  Stores the uploaded image as the
// user's facial reference.
func (h *FacialHandler) UploadRegister(c echo.Context) error {
	id, img, err := readUpload(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Faces.EnrollImage(ctx, id, img); err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, accountResp{Message: "User registered successfully", UserID: id.String()})
}

// UploadAuthenticate: POST /facial-authentication/.
func (h *FacialHandler) UploadAuthenticate(c echo.Context) error {
	return h.uploadVerify(c, "Facial authentication successful")
}

// UploadCapture: POST /facial_capture.  Same check as UploadAuthenticate,
// reported as the final step of the three-factor flow.
func (h *FacialHandler) UploadCapture(c echo.Context) error {
	return h.uploadVerify(c, "Three-level authentication successful")
}

func (h *FacialHandler) uploadVerify(c echo.Context, okMsg string) error {
	id, img, err := readUpload(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Faces.VerifyImage(ctx, id, img); err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, accountResp{Message: okMsg, UserID: id.String()})
}

// readUpload parses the user_id field and reads the "file" part.
func readUpload(c echo.Context) (model.AccountID, []byte, error) {
	id, err := parseUserID(c.FormValue("user_id"))
	if err != nil {
		return model.AccountID{}, nil, err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return model.AccountID{}, nil, errMissingFile
	}
	f, err := fh.Open()
	if err != nil {
		return model.AccountID{}, nil, errUnreadableFile
	}
	defer f.Close()
	img, err := io.ReadAll(f)
	if err != nil {
		return model.AccountID{}, nil, errUnreadableFile
	}
	return id, img, nil
}
