package utils

import "testing"

func TestFindingDedupKey(t *testing.T) {
	base := FindingDedupKey("asset-1", "ssh_weak_crypto", "SSH Weak Encryption Algorithms", []string{"CVE-2008-5161"})

	t.Run("stable", func(t *testing.T) {
		again := FindingDedupKey("asset-1", "ssh_weak_crypto", "SSH Weak Encryption Algorithms", []string{"CVE-2008-5161"})
		if again != base {
			t.Errorf("same inputs produced different keys: %s vs %s", base, again)
		}
	})

	t.Run("cve order independent", func(t *testing.T) {
		a := FindingDedupKey("asset-1", "apache_multi", "Apache Multiple Vulnerabilities", []string{"CVE-2021-41773", "CVE-2021-42013"})
		b := FindingDedupKey("asset-1", "apache_multi", "Apache Multiple Vulnerabilities", []string{"CVE-2021-42013", "CVE-2021-41773"})
		if a != b {
			t.Error("CVE ordering changed the dedup key")
		}
	})

	t.Run("title case insensitive", func(t *testing.T) {
		a := FindingDedupKey("asset-1", "p", "OpenSSL Heartbleed", nil)
		b := FindingDedupKey("asset-1", "p", "openssl heartbleed", nil)
		if a != b {
			t.Error("title casing changed the dedup key")
		}
	})

	t.Run("distinct assets distinct keys", func(t *testing.T) {
		other := FindingDedupKey("asset-2", "ssh_weak_crypto", "SSH Weak Encryption Algorithms", []string{"CVE-2008-5161"})
		if other == base {
			t.Error("different assets should not share a dedup key")
		}
	})
}
