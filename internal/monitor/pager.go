package monitor

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"vsphere-events-cli/pkg/models"
)

// DefaultMaxPages bounds a retrieval whose server keeps returning tokens.
const DefaultMaxPages = 1000

// ErrPageLimit is returned when a retrieval needs more than MaxPages pages.
var ErrPageLimit = errors.New("property retrieval exceeded page limit")

// Pager walks the pages of one property retrieval. The first call to Next
// issues RetrievePropertiesEx; later calls continue with the last token.
// Only an absent or empty token ends the sequence.
//
//	p := NewPager(pc, ref, specs, opts, 0)
//	for p.Next(ctx) {
//		use(p.Page())
//	}
//	if err := p.Err(); err != nil { ... }
type Pager struct {
	pc       PropertyCollector
	this     models.ManagedObjectReference
	specs    []models.PropertyFilterSpec
	opts     models.RetrieveOptions
	maxPages int

	pages int
	token string
	done  bool
	page  []models.ObjectContent
	err   error

	log *logrus.Entry
}

// NewPager prepares a retrieval; maxPages <= 0 means DefaultMaxPages.
func NewPager(pc PropertyCollector, propCollector models.ManagedObjectReference, specs []models.PropertyFilterSpec, opts models.RetrieveOptions, maxPages int) *Pager {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Pager{
		pc:       pc,
		this:     propCollector,
		specs:    specs,
		opts:     opts,
		maxPages: maxPages,
		log:      logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithLogger replaces the logger used for per-page debug output.
func (p *Pager) WithLogger(log *logrus.Entry) *Pager {
	if log != nil {
		p.log = log
	}
	return p
}

// Next fetches the next page. It returns false once the final page has
// been consumed or a call failed.
func (p *Pager) Next(ctx context.Context) bool {
	if p.done || p.err != nil {
		return false
	}

	var (
		res *models.RetrieveResult
		err error
	)
	if p.pages == 0 {
		res, err = p.pc.RetrievePropertiesEx(ctx, p.this, p.specs, p.opts)
	} else {
		if p.pages >= p.maxPages {
			p.err = errors.Wrapf(ErrPageLimit, "token still present after %d pages", p.pages)
			return false
		}
		res, err = p.pc.ContinueRetrievePropertiesEx(ctx, p.this, p.token)
	}
	if err != nil {
		p.err = err
		p.page = nil
		return false
	}

	p.pages++
	p.page, p.token = nil, ""
	if res != nil {
		p.page = res.Objects
		p.token = res.Token
	}
	p.done = p.token == ""

	p.log.WithFields(logrus.Fields{
		"page":    p.pages,
		"objects": len(p.page),
		"token":   p.token,
	}).Debug("Retrieved property page")
	return true
}

// Page returns the objects of the current page.
func (p *Pager) Page() []models.ObjectContent {
	return p.page
}

// Pages returns how many pages have been received so far.
func (p *Pager) Pages() int {
	return p.pages
}

// Err returns the error that stopped iteration, if any.
func (p *Pager) Err() error {
	return p.err
}
