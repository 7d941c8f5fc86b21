package bitcoin

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
)

// ClassifyScript matches a locking script against the standard spending templates and
// returns its canonical address. Unrecognized scripts report ok == false.
//
// Matching is structural only (opcodes and push lengths), so a bare-pubkey output whose
// key is not a valid curve point still yields the hash160 of the pushed bytes.
func ClassifyScript(pkScript []byte) (class model.ScriptClass, addr model.Address, ok bool) {
	switch txscript.GetScriptClass(pkScript) {
	case txscript.PubKeyHashTy:
		// OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG
		return classified(model.ScriptPubKeyHash, model.KindPubKeyHash, pkScript[3:23])
	case txscript.ScriptHashTy:
		// OP_HASH160 <20> OP_EQUAL
		return classified(model.ScriptScriptHash, model.KindScriptHash, pkScript[2:22])
	case txscript.WitnessV0PubKeyHashTy:
		// OP_0 <20>
		return classified(model.ScriptWitnessPubKeyHash, model.KindWitnessPubKeyHash, pkScript[2:22])
	case txscript.WitnessV0ScriptHashTy:
		// OP_0 <32>
		return classified(model.ScriptWitnessScriptHash, model.KindWitnessScriptHash, pkScript[2:34])
	case txscript.WitnessV1TaprootTy:
		// OP_1 <32>
		return classified(model.ScriptTaproot, model.KindTaproot, pkScript[2:34])
	case txscript.PubKeyTy:
		// <33 or 65 byte pubkey> OP_CHECKSIG
		pubKey := pkScript[1 : len(pkScript)-1]
		return classified(model.ScriptPubKey, model.KindPubKeyHash, btcutil.Hash160(pubKey))
	default:
		return model.ScriptNonStandard, model.Address{}, false
	}
}

func classified(class model.ScriptClass, kind model.Kind, payload []byte) (model.ScriptClass, model.Address, bool) {
	addr, err := model.NewAddress(kind, payload)
	if err != nil {
		return model.ScriptNonStandard, model.Address{}, false
	}
	return class, addr, true
}
