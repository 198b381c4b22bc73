package minisite

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"github.com/miekg/dns"
	"go.uber.org/zap"

	"github.com/stayflow/stayflow-backend/internal/db"
)

const expiryWarningDays = 60

// DomainChecker verifies that a tenant's custom domain points at the
// platform before the mini-site is served on it.
type DomainChecker struct {
	platformHost string
	resolverAddr string
	client       *dns.Client
	resolver     *net.Resolver
	logger       *zap.Logger
}

func NewDomainChecker(platformHost string, logger *zap.Logger) *DomainChecker {
	return &DomainChecker{
		platformHost: platformHost,
		resolverAddr: "8.8.8.8:53",
		client:       &dns.Client{Timeout: 5 * time.Second},
		resolver: &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
				d := net.Dialer{Timeout: 5 * time.Second}
				return d.DialContext(ctx, network, address)
			},
		},
		logger: logger,
	}
}

// Check resolves the domain and reports whether it is routed to the
// platform, plus registration expiry details when whois data is
// parseable. Lookup failures produce a failed result, not an error.
func (c *DomainChecker) Check(ctx context.Context, domain string) *db.DomainCheckResult {
	result := &db.DomainCheckResult{
		Domain:    domain,
		CheckedAt: time.Now(),
	}

	verified, resolved, err := c.verifyRouting(ctx, domain)
	result.Verified = verified
	result.ResolvedTo = resolved
	if err != nil {
		result.Error = err.Error()
	}

	c.lookupExpiry(domain, result)

	c.logger.Info("Domain check completed",
		zap.String("domain", domain),
		zap.Bool("verified", result.Verified),
		zap.Int("days_to_expiry", result.DaysToExpiry),
	)

	return result
}

// verifyRouting accepts either a CNAME to the platform host or A records
// matching the platform host's own addresses.
func (c *DomainChecker) verifyRouting(ctx context.Context, domain string) (bool, []string, error) {
	if target, err := c.lookupCNAME(domain); err == nil && target != "" {
		if strings.EqualFold(strings.TrimSuffix(target, "."), c.platformHost) {
			return true, []string{target}, nil
		}
		return false, []string{target}, fmt.Errorf("CNAME points to %s, expected %s", target, c.platformHost)
	}

	ips, err := c.resolver.LookupHost(ctx, domain)
	if err != nil {
		return false, nil, fmt.Errorf("dns lookup failed: %w", err)
	}

	platformIPs, err := c.resolver.LookupHost(ctx, c.platformHost)
	if err != nil {
		return false, ips, fmt.Errorf("platform lookup failed: %w", err)
	}

	for _, ip := range ips {
		for _, pip := range platformIPs {
			if ip == pip {
				return true, ips, nil
			}
		}
	}

	return false, ips, fmt.Errorf("domain does not resolve to the platform")
}

func (c *DomainChecker) lookupCNAME(domain string) (string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeCNAME)

	resp, _, err := c.client.Exchange(msg, c.resolverAddr)
	if err != nil {
		return "", err
	}

	for _, ans := range resp.Answer {
		if cname, ok := ans.(*dns.CNAME); ok {
			return cname.Target, nil
		}
	}

	return "", nil
}

func (c *DomainChecker) lookupExpiry(domain string, result *db.DomainCheckResult) {
	raw, err := whois.Whois(domain)
	if err != nil {
		c.logger.Debug("whois lookup failed", zap.String("domain", domain), zap.Error(err))
		return
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		c.logger.Debug("whois parse failed", zap.String("domain", domain), zap.Error(err))
		return
	}

	result.Registrar = parsed.Registrar.Name

	if parsed.Domain.ExpirationDate != "" {
		if t, err := parseWhoisDate(parsed.Domain.ExpirationDate); err == nil {
			result.ExpiresAt = &t
			result.DaysToExpiry = int(time.Until(t).Hours() / 24)

			if result.DaysToExpiry > 0 && result.DaysToExpiry < expiryWarningDays {
				c.logger.Warn("Custom domain expiring soon",
					zap.String("domain", domain),
					zap.Int("days_to_expiry", result.DaysToExpiry),
				)
			}
		}
	}
}

func parseWhoisDate(value string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"02-Jan-2006",
		"2006.01.02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %s", value)
}
