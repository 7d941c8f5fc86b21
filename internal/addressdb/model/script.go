package model

// ScriptClass is the result of classifying an output locking script.
type ScriptClass string

var (
	ScriptPubKeyHash        ScriptClass = "pubkeyhash"
	ScriptScriptHash        ScriptClass = "scripthash"
	ScriptWitnessPubKeyHash ScriptClass = "witness_v0_keyhash"
	ScriptWitnessScriptHash ScriptClass = "witness_v0_scripthash"
	ScriptPubKey            ScriptClass = "pubkey"
	ScriptTaproot           ScriptClass = "witness_v1_taproot"
	ScriptNonStandard       ScriptClass = "nonstandard"
)
