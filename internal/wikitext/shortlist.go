package wikitext

import "regexp"

// wpjRe matches the {{Wpj|Title}} entries of the short-article list.
var wpjRe = regexp.MustCompile(`\{\{Wpj\|([^}]*)\}\}`)

// ListedArticles returns the article titles referenced by {{Wpj|...}}
// entries, in source order.
func ListedArticles(text string) []string {
	var titles []string
	for _, m := range wpjRe.FindAllStringSubmatch(text, -1) {
		titles = append(titles, m[1])
	}
	return titles
}

// RemoveListedArticle deletes every line that references the given
// article through a {{Wpj|...}} entry. The whole line goes, including
// bullets and annotations around the template.
func RemoveListedArticle(text, title string) string {
	re := regexp.MustCompile(`(?m)^.*\{\{Wpj\|` + regexp.QuoteMeta(title) + `\}\}.*\n?`)
	return re.ReplaceAllString(text, "")
}
