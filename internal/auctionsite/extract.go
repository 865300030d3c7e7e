package auctionsite

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"bid-reconciler/internal/models"
	"bid-reconciler/internal/trackingerrors"

	"github.com/PuerkitoBio/goquery"
)

// endedVocabulary is the closed set of status words meaning the auction is over
var endedVocabulary = []string{"sold", "ended", "closed", "completed"}

// challengeSelectors match known bot-mitigation pages
var challengeSelectors = []string{
	`iframe[src*="recaptcha"]`,
	`iframe[src*="hcaptcha"]`,
	`iframe[src*="_Incapsula_Resource"]`,
	`[class*="captcha"]`,
	`#challenge-form`,
}

var priceRe = regexp.MustCompile(`\$?([\d,]+)`)

// LoginForm is what the login page asks the browser to submit
type LoginForm struct {
	Action string
	Fields url.Values
}

// LotPage is what a lot detail page says about the auction
type LotPage struct {
	NotFound   bool
	StatusText string
	Ended      bool
	FinalPrice *float64
}

func parseDocument(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %v: %w", err, trackingerrors.ErrExtractionAmbiguous)
	}
	return doc, nil
}

// ParseLoginForm finds the form holding the username field and collects its hidden inputs
func ParseLoginForm(body []byte, p Profile) (LoginForm, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return LoginForm{}, err
	}

	input := doc.Find(fmt.Sprintf(`input[name="%s"]`, p.UsernameField)).First()
	if input.Length() == 0 {
		return LoginForm{}, fmt.Errorf("login field %q not found: %w", p.UsernameField, trackingerrors.ErrExtractionAmbiguous)
	}

	form := input.Closest("form")
	fields := url.Values{}
	action := ""
	if form.Length() > 0 {
		action, _ = form.Attr("action")
		form.Find(`input[type="hidden"]`).Each(func(_ int, s *goquery.Selection) {
			name, ok := s.Attr("name")
			if !ok || name == "" {
				return
			}
			value, _ := s.Attr("value")
			fields.Set(name, value)
		})
	}

	return LoginForm{Action: strings.TrimSpace(action), Fields: fields}, nil
}

// ParsePrice returns the first number in text, ignoring "$" and thousands separators.
// Only the integer part is read: "$1,250.50" is 1250.
func ParsePrice(text string) (float64, bool) {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseLotPage reads the status and final price from a lot detail page
func ParseLotPage(statusCode int, body []byte, p Profile) (LotPage, error) {
	if statusCode == 404 {
		return LotPage{NotFound: true}, nil
	}

	doc, err := parseDocument(body)
	if err != nil {
		return LotPage{}, err
	}

	pageText := strings.ToLower(doc.Find("body").Text())
	title := strings.ToLower(doc.Find("title").Text())
	if strings.Contains(title, "404") {
		return LotPage{NotFound: true}, nil
	}
	for _, marker := range p.NotFoundMarkers {
		if strings.Contains(pageText, marker) {
			return LotPage{NotFound: true}, nil
		}
	}

	page := LotPage{StatusText: firstText(doc, p.StatusSelectors)}
	for _, word := range endedVocabulary {
		if strings.Contains(page.StatusText, word) {
			page.Ended = true
			break
		}
	}
	if !page.Ended {
		return page, nil
	}

	for _, sel := range p.PriceSelectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if price, ok := ParsePrice(el.Text()); ok {
			page.FinalPrice = &price
			break
		}
	}
	return page, nil
}

// ParseWonBids reports whether the "my bids / won" page lists the lot.
// Without a recognisable won section the whole page must mention both the lot and "won".
func ParseWonBids(body []byte, lotNumber string, p Profile) (bool, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return false, err
	}

	for _, sel := range p.WonSectionSelectors {
		section := doc.Find(sel).First()
		if section.Length() > 0 {
			return strings.Contains(section.Text(), lotNumber), nil
		}
	}

	text := doc.Find("body").Text()
	return strings.Contains(text, lotNumber) && strings.Contains(strings.ToLower(text), "won"), nil
}

// ClassifyLot turns a parsed lot page into the final verdict.
// The bid won if the final price equals the bid exactly or the won-bids page lists the lot.
func ClassifyLot(lotNumber string, page LotPage, expectedBid float64, confirmedWin bool) models.CheckResult {
	switch {
	case page.NotFound:
		return models.CheckResult{LotNumber: lotNumber, Outcome: models.OutcomeUnknown}
	case !page.Ended:
		return models.CheckResult{LotNumber: lotNumber, Outcome: models.OutcomeActive}
	}

	priceMatch := page.FinalPrice != nil && *page.FinalPrice != 0 && *page.FinalPrice == expectedBid
	outcome := models.OutcomeLost
	if confirmedWin || priceMatch {
		outcome = models.OutcomeWon
	}
	return models.CheckResult{
		LotNumber:    lotNumber,
		Outcome:      outcome,
		FinalPrice:   page.FinalPrice,
		AuctionEnded: true,
	}
}

// HasChallenge reports whether the page carries a known bot-challenge marker
func HasChallenge(body []byte) bool {
	if len(body) == 0 {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return false
	}
	for _, sel := range challengeSelectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}
	return false
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		el := doc.Find(sel).First()
		if el.Length() > 0 {
			return strings.ToLower(strings.TrimSpace(el.Text()))
		}
	}
	return ""
}
