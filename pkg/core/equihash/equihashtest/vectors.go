package equihashtest

import (
	"encoding/hex"

	"github.com/ehverify/ehverify/pkg/core/equihash"
)

// ZcashGenesisHash is the display-order hash of the Zcash mainnet genesis
// block.
const ZcashGenesisHash = "00040fe8ec8471911baa1db1266ea15dd06b4a8a5c453883c000b031973dce08"

// Zcash mainnet genesis block: version 4, time 1477641360, bits 0x1f07ffff,
// nonce 0x1257, solved at (200,9) with the ZcashPoW personalization.
const (
	zcashGenesisHeader = "040000000000000000000000000000000000000000000000000000000000000000000000db4d7a85b768123f1dff1d4c" +
		"4cece70083b2d27e117b4ac2e31d087988a5eac400000000000000000000000000000000000000000000000000000000" +
		"0000000090041358ffff071f5712000000000000000000000000000000000000000000000000000000000000"

	zcashGenesisSolution = "000a889f00854b8665cd555f4656f68179d31ccadc1b1f7fb0952726313b16941da348284d67add4686121d4e3d93016" +
		"0c1348d8191c25f12b267a6a9c131b5031cbf8af1f79c9d513076a216ec87ed045fa966e01214ed83ca02dc1797270a4" +
		"54720d3206ac7d931a0a680c5c5e099057592570ca9bdf6058343958b31901fce1a15a4f38fd347750912e14004c73df" +
		"e588b903b6c03166582eeaf30529b14072a7b3079e3a684601b9b3024054201f7440b0ee9eb1a7120ff43f713735494a" +
		"a27b1f8bab60d7f398bca14f6abb2adbf29b04099121438a7974b078a11635b594e9170f1086140b4173822dd6978944" +
		"83e1c6b4e8b8dcd5cb12ca4903bc61e108871d4d915a9093c18ac9b02b6716ce1013ca2c1174e319c1a570215bc9ab5f" +
		"7564765f7be20524dc3fdf8aa356fd94d445e05ab165ad8bb4a0db096c097618c81098f91443c719416d39837af6de85" +
		"015dca0de89462b1d8386758b2cf8a99e00953b308032ae44c35e05eb71842922eb69797f68813b59caf266cb6c21356" +
		"9ae3280505421a7e3a0a37fdf8e2ea354fc5422816655394a9454bac542a9298f176e211020d63dee6852c40de02267e" +
		"2fc9d5e1ff2ad9309506f02a1a71a0501b16d0d36f70cdfd8de78116c0c506ee0b8ddfdeb561acadf31746b5a9dd32c2" +
		"1930884397fb1682164cb565cc14e089d66635a32618f7eb05fe05082b8a3fae620571660a6b89886eac53dec109d7cb" +
		"b6930ca698a168f301a950be152da1be2b9e07516995e20baceebecb5579d7cdbc16d09f3a50cb3c7dffe33f26686d4f" +
		"f3f8946ee6475e98cf7b3cf9062b6966e838f865ff3de5fb064a37a21da7bb8dfd2501a29e184f207caaba364f36f232" +
		"9a77515dcb710e29ffbf73e2bbd773fab1f9a6b005567affff605c132e4e4dd69f36bd201005458cfbd2c658701eb2a7" +
		"00251cefd886b1e674ae816d3f719bac64be649c172ba27a4fd55947d95d53ba4cbc73de97b8af5ed4840b659370c556" +
		"e7376457f51e5ebb66018849923db82c1c9a819f173cccdb8f3324b239609a300018d0fb094adf5bd7cbb3834c69e6d0" +
		"b3798065c525b20f040e965e1a161af78ff7561cd874f5f1b75aa0bc77f720589e1b810f831eac5073e6dd46d00a2793" +
		"f70f7427f0f798f2f53a67e615e65d356e66fe40609a958a05edb4c175bcc383ea0530e67ddbe479a898943c6e3074c6" +
		"fcc252d6014de3a3d292b03f0d88d312fe221be7be7e3c59d07fa0f2f4029e364f1f355c5d01fa53770d0cd76d82bf7e" +
		"60f6903bc1beb772e6fde4a70be51d9c7e03c8d6d8dfb361a234ba47c470fe630820bbd920715621b9fbedb49fcee165" +
		"ead0875e6c2b1af16f50b5d6140cc981122fcbcf7c5a4e3772b3661b628e08380abc545957e59f634705b1bbde2f0b4e" +
		"055a5ec5676d859be77e20962b645e051a880fddb0180b4555789e1f9344a436a84dc5579e2553f1e5fb0a599c137be3" +
		"6cabbed0319831fea3fddf94ddc7971e4bcf02cdc93294a9aab3e3b13e3b058235b4f4ec06ba4ceaa49d675b4ba80716" +
		"f3bc6976b1fbf9c8bf1f3e3a4dc1cd83ef9cf816667fb94f1e923ff63fef072e6a19321e4812f96cb0ffa864da50ad74" +
		"deb76917a336f31dce03ed5f0303aad5e6a83634f9fcc371096f8288b8f02ddded5ff1bb9d49331e4a84dbe154316443" +
		"8fde9ad71dab024779dcdde0b6602b5ae0a6265c14b94edd83b37403f4b78fcd2ed555b596402c28ee81d87a909c4e87" +
		"22b30c71ecdd861b05f61f8b1231795c76adba2fdefa451b283a5d527955b9f3de1b9828e7b2e74123dd47062ddcc09b" +
		"05e7fa13cb2212a6fdbc65d7e852cec463ec6fd929f5b8483cf3052113b13dac91b69f49d1b7d1aec01c4a68e41ce157"
)

// Vector is a header with a known valid minimal solution.
type Vector struct {
	Name     string
	Params   equihash.Params
	Header   []byte
	Solution []byte
}

// ZcashGenesisHeader returns the 140-byte Zcash mainnet genesis header.
func ZcashGenesisHeader() []byte {
	return mustHex(zcashGenesisHeader)
}

// ZcashGenesisSolution returns the genesis block's 1344-byte solution.
func ZcashGenesisSolution() []byte {
	return mustHex(zcashGenesisSolution)
}

// Vectors returns one valid solution per large profile. Apart from the
// genesis block, the headers are the genesis header with its nonce field
// set to 1, solved by an independent solver.
func Vectors() []Vector {
	return []Vector{
		{
			Name:     "zcash genesis",
			Params:   equihash.Params{N: 200, K: 9},
			Header:   ZcashGenesisHeader(),
			Solution: ZcashGenesisSolution(),
		},
		{
			Name:     "96_3",
			Params:   equihash.Params{N: 96, K: 3},
			Header:   genesisWithNonce(1),
			Solution: mustHex("0f96596b878f077529b5dd9ab44ae3ce46716247715d9e66a5"),
		},
		{
			Name:     "144_5",
			Params:   equihash.Params{N: 144, K: 5},
			Header:   genesisWithNonce(1),
			Solution: mustHex("15361e30a733dcccb34fac50439fae35bfe0cb2916ff993789173e4f73d11a3182d6de19e6533e7ca2344ea97b55f7d9" +
				"58e56562cd3bf285aad6a6d873dbb6d66fabe2404f07477f97bcb2691a3037be929aece1394575078b8563dc23e5f051" +
				"c3933818"),
		},
		{
			Name:     "192_7",
			Params:   equihash.Params{N: 192, K: 7},
			Header:   genesisWithNonce(1),
			Solution: mustHex("000d1ff02e28423fb9526dd6c41fc327cebecd0d52a9745af309793bb7cc5843e68a78491a76119c0ec10be736665ffa" +
				"b444272afa6aef7e4f8b1e49bfa042d827e2d8036129fc0f0f7f69346123b13c2638a06d7e5b43ec430906c43e1bb0c0" +
				"a1f9ed870317bf66f5cd9607ccb3cac3525cedfaa6d83a5204c3526275175f1fc80ac810722618fbe4c2748c1f623c6e" +
				"a71c55b8d78f190b7b71347427bdfa9b9671221f3472012de1e004077c4b37257ee6f3a0c524a824780fb182584e3d48" +
				"892a45ddfb6163e4056d2d046891663eaab85a0b33c4e673979c5b366c9fe1c1b020558fa29c5e152f52bd36c2852863" +
				"377aac1a39f41b9bd71c180a8d48dd5b4b7d6d8a7898067556de7781f5cdf9d16b78c93c3208ed5398d441162d3d0e13" +
				"e61907b5786dd2bb7be1ad420ad116e1374dc55af339f7ad28996974fa9f37368e07bc778c40a7cf791ee621806bb864" +
				"e3c654dc07133e7af24ca9aefb6c0c2d73b88fd88afe717d2237410190476f79ad225c39be9c591184488d67bf75cf6d" +
				"7c7a928336c7d6d462a4d87d12d926b0"),
		},
	}
}

// genesisWithNonce returns the genesis header with its 32-byte nonce field
// replaced by nonce.
func genesisWithNonce(nonce byte) []byte {
	h := ZcashGenesisHeader()
	clear(h[equihash.HeaderSize-32:])
	h[equihash.HeaderSize-32] = nonce
	return h
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
