// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package keys

import "github.com/aplane-algo/apkeys/internal/testutil"

func entropy(label string) []byte {
	return testutil.Entropy(label)
}

var supportedTypes = []KeyType{KeyTypeEd25519, KeyTypeEccCompact, KeyTypeSecp256k1}

var networks = []Network{MainNet, TestNet}
