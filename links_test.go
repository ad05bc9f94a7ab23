package storelens_test

import (
	"testing"

	"github.com/fwojciec/storelens"
	"github.com/stretchr/testify/assert"
)

func TestClassifyLinkText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want storelens.LinkCategory
		ok   bool
	}{
		{text: "Track your order", want: storelens.LinkOrderTracking, ok: true},
		{text: "Our Blog", want: storelens.LinkBlog, ok: true},
		{text: "Help Center", want: storelens.LinkSupport, ok: true},
		{text: "Contact Us", want: storelens.LinkContact, ok: true},
		{text: "Shipping", want: storelens.LinkShipping, ok: true},
		{text: "About", want: storelens.LinkAbout, ok: true},
		{text: "Size Chart", want: storelens.LinkSizeGuide, ok: true},
		{text: "Careers", want: storelens.LinkCareers, ok: true},
		{text: "Press", want: storelens.LinkPress, ok: true},
		// earlier groups win: "customer" is a support keyword
		{text: "Customer Contact", want: storelens.LinkSupport, ok: true},
		{text: "Shop all", ok: false},
		{text: "   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			got, ok := storelens.ClassifyLinkText(tt.text)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsPseudoLink(t *testing.T) {
	t.Parallel()

	assert.True(t, storelens.IsPseudoLink("javascript:void(0)"))
	assert.True(t, storelens.IsPseudoLink("mailto:hi@example.com"))
	assert.True(t, storelens.IsPseudoLink("TEL:+15551234567"))
	assert.True(t, storelens.IsPseudoLink("#main"))
	assert.True(t, storelens.IsPseudoLink(""))
	assert.False(t, storelens.IsPseudoLink("/pages/about#team"))
	assert.False(t, storelens.IsPseudoLink("https://shop.example.com/blogs/news"))
}
