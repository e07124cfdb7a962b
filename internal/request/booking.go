package request

import (
	"net/http"
	"net/url"
	"strings"
)

// ConfirmForm holds the booking-view fields posted on confirm, on top of
// the search values decoded by DecodeSearchQuery.
type ConfirmForm struct {
	Search          SearchQuery `schema:"-"`
	SpecialRequest  string      `schema:"specialRequest"`
	SubscribeOffers bool        `schema:"subscribeOffers"`
	ContactPhone    string      `schema:"contactPhone"`
	SubmissionToken string      `schema:"submissionToken"`
}

// DecodeConfirmForm parses the posted booking form.
func DecodeConfirmForm(r *http.Request) (ConfirmForm, error) {
	if err := r.ParseForm(); err != nil {
		return ConfirmForm{}, err
	}
	return decodeConfirmValues(r.PostForm)
}

func decodeConfirmValues(values url.Values) (ConfirmForm, error) {
	search, err := DecodeSearchQuery(values)
	if err != nil {
		return ConfirmForm{}, err
	}

	var form ConfirmForm
	if err := decoder.Decode(&form, values); err != nil {
		return ConfirmForm{}, err
	}
	form.Search = search
	form.ContactPhone = strings.TrimSpace(form.ContactPhone)
	form.SubmissionToken = strings.TrimSpace(form.SubmissionToken)
	return form, nil
}

// SummaryEmailForm is the address posted from the confirmation view.
type SummaryEmailForm struct {
	Email string `schema:"email" validate:"required,email"`
}

// DecodeSummaryEmailForm parses and validates the summary email form.
// The trimmed form is returned even when validation fails so it can be
// redisplayed.
func DecodeSummaryEmailForm(r *http.Request) (SummaryEmailForm, error) {
	if err := r.ParseForm(); err != nil {
		return SummaryEmailForm{}, err
	}
	var form SummaryEmailForm
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		return SummaryEmailForm{}, err
	}
	form.Email = strings.TrimSpace(form.Email)
	return form, ValidateStruct(form)
}
