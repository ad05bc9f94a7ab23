package extract

import (
	"context"

	"github.com/fwojciec/storelens"
)

// ContactInfoExtractor scans the homepage and the first reachable contact
// page for email addresses and phone numbers.
type ContactInfoExtractor struct {
	Parser storelens.PageParser
}

func (x *ContactInfoExtractor) Category() storelens.Category { return storelens.CategoryContactInfo }

func (x *ContactInfoExtractor) Extract(ctx context.Context, site storelens.Site) (storelens.Section, error) {
	home, err := homepage(ctx, site)
	if err != nil {
		return nil, err
	}
	pages := []*storelens.Response{home}
	if contact, _, _ := probe(ctx, site, storelens.ContactPaths, nil); contact != nil {
		pages = append(pages, contact)
	}

	var info storelens.ContactInfo
	for _, page := range pages {
		text, err := x.Parser.ParseText(page.Body)
		if err != nil {
			continue
		}
		info.Emails = append(info.Emails, storelens.FindEmails(text)...)
		info.PhoneNumbers = append(info.PhoneNumbers, storelens.FindPhoneNumbers(text)...)
	}
	return info, nil
}
