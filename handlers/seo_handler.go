package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thekpsgroup/contractorjobcosting-backend/config"
	apperrors "github.com/thekpsgroup/contractorjobcosting-backend/errors"
)

// Page lastmod dates. Static on purpose: tying them to deploy time would
// make every deploy look like a content update to crawlers.
const (
	launchDate = "2026-02-22"
	seoRefresh = "2026-02-23"
)

// sitePages is the public page inventory of the marketing site, relative to
// the site URL.
var sitePages = []struct {
	path    string
	lastMod string
}{
	{"", launchDate},
	{"/offer", seoRefresh},
	{"/proof", seoRefresh},
	{"/about", launchDate},
	{"/contact", seoRefresh},
	{"/construction-job-costing", seoRefresh},
	{"/contractor-job-costing-system", seoRefresh},
	{"/platforms/jobber", launchDate},
	{"/platforms/housecall-pro", launchDate},
	{"/platforms/quickbooks", launchDate},
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SEOHandler serves the crawler-facing endpoints of the site: sitemap.xml
// and robots.txt.
type SEOHandler struct {
	site *config.SiteConfig
}

func NewSEOHandler(site *config.SiteConfig) *SEOHandler {
	return &SEOHandler{site: site}
}

// Sitemap godoc
// @Summary      Sitemap
// @Description  XML sitemap of the site's public pages
// @Tags         seo
// @Produce      xml
// @Success      200  {string}  string
// @Router       /sitemap.xml [get]
func (h *SEOHandler) Sitemap(c *gin.Context) {
	urlSet := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, 0, len(sitePages)),
	}
	for _, page := range sitePages {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:     h.site.URL + page.path,
			LastMod: page.lastMod,
		})
	}

	out, err := xml.MarshalIndent(urlSet, "", "  ")
	if err != nil {
		_ = c.Error(apperrors.InternalServerError("Failed to render sitemap"))
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8",
		append([]byte(xml.Header), out...))
}

// robotsGroup is one User-agent block of the robots policy.
type robotsGroup struct {
	agents     []string
	allow      []string
	disallow   []string
	crawlDelay string
}

// Robots godoc
// @Summary      Robots policy
// @Description  Crawler access rules and sitemap reference
// @Tags         seo
// @Produce      plain
// @Success      200  {string}  string
// @Router       /robots.txt [get]
func (h *SEOHandler) Robots(c *gin.Context) {
	groups := []robotsGroup{
		// Search crawlers get full access.
		{
			agents: []string{
				"Googlebot", "Googlebot-Image", "Bingbot", "DuckDuckBot",
				"Slurp", "LinkedInBot", "Applebot",
			},
			allow:    []string{"/"},
			disallow: []string{"/api/"},
		},
		// AI assistants used for search answers stay allowed so the site
		// can surface in generated answers.
		{
			agents:   []string{"GPTBot", "ChatGPT-User", "PerplexityBot"},
			allow:    []string{"/"},
			disallow: []string{"/api/"},
		},
		// Training-dataset scrapers are blocked outright.
		{
			agents: []string{
				"CCBot", "anthropic-ai", "ClaudeBot", "Claude-Web",
				"Bytespider", "Diffbot", "img2dataset", "Omgilibot",
				"omgili", "Applebot-Extended", "DataForSeoBot",
				"PetalBot", "Scrapy",
			},
			disallow: []string{"/"},
		},
		// SEO audit tools get a crawl delay.
		{
			agents:     []string{"AhrefsBot", "SemrushBot", "MJ12bot", "DotBot"},
			allow:      []string{"/"},
			disallow:   []string{"/api/"},
			crawlDelay: "10",
		},
		{
			agents:   []string{"*"},
			allow:    []string{"/"},
			disallow: []string{"/api/", "/cdn-cgi/"},
		},
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, agent := range g.agents {
			b.WriteString("User-agent: " + agent + "\n")
		}
		for _, path := range g.allow {
			b.WriteString("Allow: " + path + "\n")
		}
		for _, path := range g.disallow {
			b.WriteString("Disallow: " + path + "\n")
		}
		if g.crawlDelay != "" {
			b.WriteString("Crawl-delay: " + g.crawlDelay + "\n")
		}
	}
	b.WriteString("\nSitemap: " + h.site.URL + "/sitemap.xml\n")

	c.String(http.StatusOK, b.String())
}
