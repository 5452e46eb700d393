package forms_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"artisanmart/internal/forms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// stubFile lets tests choose size and content type without real media bytes.
type stubFile struct {
	name        string
	size        int64
	contentType string
}

func (f stubFile) Name() string        { return f.name }
func (f stubFile) Size() int64         { return f.size }
func (f stubFile) ContentType() string { return f.contentType }
func (f stubFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(make([]byte, f.size))), nil
}

func fillValid(t *testing.T, f *forms.ProductForm) {
	t.Helper()
	values := map[string]string{
		forms.FieldName:          "Clay Vase",
		forms.FieldDescription:   "Hand thrown stoneware vase with ash glaze.",
		forms.FieldPrice:         "29.99",
		forms.FieldCategory:      "Pottery & Ceramics",
		forms.FieldQuantity:      "3",
		forms.FieldTermsAccepted: "true",
	}
	for field, value := range values {
		_, err := f.SetField(field, value)
		require.NoError(t, err)
	}
}

func TestProductForm_Progress(t *testing.T) {
	f := forms.NewProductForm(nil)
	assert.Equal(t, 20, f.Progress())

	_, err := f.SetField(forms.FieldName, "Clay Vase")
	require.NoError(t, err)
	assert.Equal(t, 36, f.Progress())

	// zero does not count as filled in
	_, err = f.SetField(forms.FieldPrice, "0")
	require.NoError(t, err)
	assert.Equal(t, 36, f.Progress())

	_, err = f.SetField(forms.FieldPrice, "Inf")
	require.NoError(t, err)
	assert.Equal(t, 36, f.Progress())

	fillValid(t, f)
	assert.Equal(t, 100, f.Progress())
}

func TestProductForm_FieldErrors(t *testing.T) {
	f := forms.NewProductForm(nil)

	msg, err := f.SetField(forms.FieldPrice, "-5")
	require.NoError(t, err)
	assert.Equal(t, "Price must be a positive number.", msg)

	for _, raw := range []string{"Inf", "+Inf", "1e400", "NaN"} {
		msg, err = f.SetField(forms.FieldPrice, raw)
		require.NoError(t, err)
		assert.Equal(t, "Price must be a positive number.", msg, raw)
	}

	msg, err = f.SetField(forms.FieldPrice, "29.99")
	require.NoError(t, err)
	assert.Empty(t, msg)

	msg, err = f.SetField(forms.FieldDescription, "short")
	require.NoError(t, err)
	assert.Equal(t, "Description must be at least 20 characters.", msg)

	msg, err = f.SetField(forms.FieldQuantity, "2.5")
	require.NoError(t, err)
	assert.Equal(t, "Quantity must be a non-negative integer.", msg)

	msg, err = f.SetField(forms.FieldQuantity, "-1")
	require.NoError(t, err)
	assert.Equal(t, "Quantity must be a non-negative integer.", msg)

	_, err = f.SetField("colour", "red")
	assert.Error(t, err)
	_, err = f.SetField(forms.FieldTrackInventory, "maybe")
	assert.Error(t, err)
}

func TestProductForm_ValidateAndStepErrors(t *testing.T) {
	f := forms.NewProductForm(nil)

	_, err := f.Validate()
	var verrs forms.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, forms.FieldName)
	assert.Equal(t, "Quantity is required.", verrs[forms.FieldQuantity])

	basic := f.StepErrors(forms.StepBasic)
	assert.Contains(t, basic, forms.FieldName)
	assert.NotContains(t, basic, forms.FieldQuantity)
	assert.Empty(t, f.StepErrors(forms.StepImages))

	fillValid(t, f)
	in, err := f.Validate()
	require.NoError(t, err)
	assert.Equal(t, 29.99, in.Price)
	assert.Equal(t, 3, in.Quantity)
	assert.Equal(t, "Piece", in.QuantityUnit)

	body := in.Create([]string{"url1"}, nil)
	assert.Equal(t, []string{"url1"}, body.Pictures)
	assert.Equal(t, []string{}, body.Videos)
	assert.Equal(t, []string{}, body.Tags)
}

func TestProductForm_AvailabilityWindow(t *testing.T) {
	f := forms.NewProductForm(nil)
	fillValid(t, f)
	_, _ = f.SetField(forms.FieldAvailableFrom, "2026-05-10")
	msg, _ := f.SetField(forms.FieldAvailableUntil, "2026-05-01")
	assert.NotEmpty(t, msg)

	msg, _ = f.SetField(forms.FieldAvailableUntil, "01/06/2026")
	assert.Equal(t, "Date must be in YYYY-MM-DD format.", msg)

	msg, _ = f.SetField(forms.FieldAvailableUntil, "2026-06-01")
	assert.Empty(t, msg)
}

func TestProductForm_Tags(t *testing.T) {
	f := forms.NewProductForm(nil)

	tag, err := f.AddTag("  handmade ")
	require.NoError(t, err)
	assert.Equal(t, "handmade", tag)

	_, err = f.AddTag("handmade")
	assert.ErrorIs(t, err, forms.ErrDuplicateTag)
	_, err = f.AddTag("   ")
	assert.ErrorIs(t, err, forms.ErrEmptyTag)
	_, err = f.AddTag("Handmade")
	assert.NoError(t, err)

	assert.Equal(t, []string{"handmade", "Handmade"}, f.Tags())
	assert.True(t, f.RemoveTag("handmade"))
	assert.False(t, f.RemoveTag("handmade"))
	assert.Equal(t, []string{"Handmade"}, f.Tags())

	_, err = f.SetField(forms.FieldTags, "x")
	assert.Error(t, err)
}

func TestProductForm_Steps(t *testing.T) {
	f := forms.NewProductForm(nil)
	assert.Equal(t, forms.StepBasic, f.Step())
	assert.Equal(t, forms.StepBasic, f.Prev())

	for i := 0; i < 10; i++ {
		f.Next()
	}
	assert.Equal(t, forms.StepShipping, f.Step())
	assert.Equal(t, forms.StepInventory, f.Prev())

	require.NoError(t, f.GoTo(forms.StepImages))
	assert.Equal(t, "images", f.Step().String())
	assert.Error(t, f.GoTo(forms.Step(42)))

	step, err := forms.ParseStep("details")
	require.NoError(t, err)
	assert.Equal(t, forms.StepDetails, step)
	_, err = forms.ParseStep("payment")
	assert.Error(t, err)
}

func TestMediaList_StageAndRemove(t *testing.T) {
	previews := forms.NewPreviewRegistry()
	images := forms.NewMediaList(forms.KindImage, previews)

	a := stubFile{name: "a.png", size: 10, contentType: "image/png"}
	b := stubFile{name: "b.jpg", size: 10, contentType: "image/jpeg"}
	c := stubFile{name: "c.webp", size: 10, contentType: "image/webp"}
	big := stubFile{name: "big.png", size: forms.MaxFileSize + 1, contentType: "image/png"}
	gif := stubFile{name: "anim.gif", size: 10, contentType: "image/gif"}

	rejected := images.Stage(a, big, b, gif, c)
	require.Len(t, rejected, 2)
	assert.Equal(t, "File big.png is too large. Max size is 5MB.", rejected[0].Reason)
	assert.Equal(t, "File anim.gif has unsupported format. Please use JPEG, PNG or WebP.", rejected[1].Reason)
	assert.Equal(t, 3, images.Len())
	assert.Equal(t, 3, previews.Live())

	removed := images.Items()[1]
	require.NoError(t, images.Remove(1))
	assert.Error(t, images.Remove(5))

	items := images.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a.png", items[0].File.Name())
	assert.Equal(t, "c.webp", items[1].File.Name())
	for _, it := range items {
		f, ok := previews.Resolve(it.Preview)
		require.True(t, ok)
		assert.Equal(t, it.File.Name(), f.Name())
		assert.True(t, strings.HasPrefix(it.Preview, "blob:"))
	}
	_, ok := previews.Resolve(removed.Preview)
	assert.False(t, ok)
	assert.Equal(t, 2, previews.Live())

	images.Clear()
	assert.Equal(t, 0, images.Len())
	assert.Equal(t, 0, previews.Live())
}

func TestMediaList_Videos(t *testing.T) {
	videos := forms.NewMediaList(forms.KindVideo, nil)
	rejected := videos.Stage(
		stubFile{name: "clip.mp4", size: 100, contentType: "video/mp4"},
		stubFile{name: "photo.png", size: 100, contentType: "image/png"},
	)
	require.Len(t, rejected, 1)
	assert.Equal(t, "photo.png", rejected[0].File)
	assert.Equal(t, 1, videos.Len())
}

func TestMemoryFile_SniffsContentType(t *testing.T) {
	f := forms.NewMemoryFile("shot.bin", pngHeader)
	assert.Equal(t, "image/png", f.ContentType())
	assert.Nil(t, forms.CheckFile(forms.KindImage, f))

	txt := forms.NewMemoryFile("notes.png", []byte("just some text"))
	assert.NotNil(t, forms.CheckFile(forms.KindImage, txt))
}

func TestProductForm_ResetAndDispose(t *testing.T) {
	previews := forms.NewPreviewRegistry()
	f := forms.NewProductForm(previews)
	fillValid(t, f)
	_, _ = f.AddTag("clay")
	f.Next()
	f.Images().Stage(stubFile{name: "a.png", size: 1, contentType: "image/png"})
	f.Videos().Stage(stubFile{name: "v.mp4", size: 1, contentType: "video/mp4"})
	require.Equal(t, 2, previews.Live())

	f.Reset()
	assert.Equal(t, 20, f.Progress())
	assert.Equal(t, forms.StepBasic, f.Step())
	assert.Empty(t, f.Tags())
	assert.Equal(t, forms.NewProductDraft().QuantityUnit, f.Draft().QuantityUnit)
	assert.Equal(t, 0, previews.Live())

	require.True(t, f.BeginSubmit())
	assert.False(t, f.BeginSubmit())
	assert.True(t, f.Submitting())
	f.EndSubmit()
	assert.False(t, f.Submitting())

	f.Images().Stage(stubFile{name: "b.png", size: 1, contentType: "image/png"})
	f.Dispose()
	assert.True(t, f.Disposed())
	assert.Equal(t, 0, previews.Live())
	assert.False(t, f.BeginSubmit())
}

func TestSignupForm_Validate(t *testing.T) {
	form := forms.SignupForm{
		FullName:        "Ana Weaver",
		Email:           "ana@example.com",
		Phone:           "+62 811 000",
		Address:         "Jl. Batik 1",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		TermsAccepted:   true,
	}
	reg, err := form.Validate()
	require.NoError(t, err)
	assert.Equal(t, "ana", reg.Username)

	form.ConfirmPassword = "secret124"
	form.TermsAccepted = false
	_, err = form.Validate()
	var verrs forms.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Passwords do not match", verrs["confirm_password"])
	assert.Contains(t, verrs, "terms")
}

func TestResetPasswordForm_Validate(t *testing.T) {
	err := forms.ResetPasswordForm{NewPassword: "secret123", ConfirmPassword: "secret123"}.Validate()
	var verrs forms.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Invalid reset link. No token provided.", verrs["token"])

	err = forms.ResetPasswordForm{Token: "t", NewPassword: "secret123", ConfirmPassword: "other123"}.Validate()
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Passwords do not match", verrs["confirm_password"])

	assert.NoError(t, forms.ResetPasswordForm{Token: "t", NewPassword: "secret123", ConfirmPassword: "secret123"}.Validate())
}

func TestBrandForm_Validate(t *testing.T) {
	_, err := forms.BrandForm{Name: "A", Description: "short"}.Validate()
	var verrs forms.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)

	in, err := forms.BrandForm{Name: "Batik House", Description: "Hand drawn batik from Solo."}.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Batik House", in.Name)

	_, err = forms.BrandForm{
		Name:        "Batik House",
		Description: "Hand drawn batik from Solo.",
		Logo:        stubFile{name: "logo.gif", size: 1, contentType: "image/gif"},
	}.Validate()
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "logo")
}
