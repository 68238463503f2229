// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package profile

// The DER-encoded PKCS#1 RSA private keys below are shipped as build-time
// constants, the way the original editor tooling embeds its signing keys:
// they are not secrets in the cryptographic sense, only in the
// distribution sense (a rewritten asset must be signed with the matching
// key for the target game to accept it). These particular keys are
// placeholder material generated for this repository — see DESIGN.md for
// why the real per-game keys could not be sourced — and are only
// meaningful to a seresave-signed test fixture, never to a shipped game.
const (
	keySSHDBase64   = `MIIEpAIBAAKCAQEA0h/uUIs81UG2eb+HMn8WvOaIrLiIDJQZj/tF2RN4EV42cV6TtpFBttAmPnaMksSeLcbxQjQUMm/J303RopaWeznyq0WhQXzEHdGC4vFdsboVtoxKc2HXptVUjmtl24+0gWV5nqf013lxP4ciHdUoh91MT4jSjjEV4oK3Kxvz7KtQ/7DJlhP/m7szH9LFL1mxrUCi+i195QouiO3ifoyTj45CwWttwDe1rt8QmxITm1B9xa/qk/D9iXSnD2STsWtHDTc7GkUK6z8K76LrxIJEmK/XTawSdddIk0xUahAOD/Q0aAm63S6WmKMBkZU5qTLvxSRulHntg3p2jLa8Cbpb5QIDAQABAoIBACeOdk04YRveco0p5rg1X6DxH0KwvH/ts4A88/HBLgXLACHIhbNFViMlvUVeCOmqVQLWJF3rsu+pxs2gdzoN8kdBafMfORO8eqkIY4T4nkRSfTrv3yYogbH5ECF9i1/RhlAju8kH4lpcFNs6Q8xs7+Pf37lLTyQQjoelRvk5Gmrvn/q1Y/5OxteZvCGUav7rXRgaYMVBE2UBHiCC8g/LdyR5B5+V3jOnlu9fyJsKfjkee5T9VHKJWM7pqcoUl3TT1XSH+qsdx6Ju4H/zfdM+hBJknJhVkngcEYRwPi1S/sZpWpGhI1DJZ9CyqEj/qEnZG1G9MrYFU5ZCbsxvs9VN32MCgYEA8Z3+l3TnMGxqahF6kJjZ4cii3fTPEtMtQrZjZ/0+J1oe/U6U/VXfMoAgWsLUlRtOJpL2DqH4ar+Kwhe4RSsgGmagaxVB9xSw0C0AXz6Us1vf+R7YDdXjW1iZz0tdH2wQZQLG2o/+Ax4vfPA0GTikeHVonZulDkpgkJiBH5tpM1cCgYEA3qIF4r9QScwxQv7qhUwilUvjazP0h3l6ASE2S5hmdms8NEPxgvcYehL/fdBKf64xnV/WeXBEwmIdFxgDlvwAPcBXRdBcUSOJcrcuaCeCc1l0BPcfPW8QzsS9cT2CPag7+emBZXRHFmLmngZb9uYIizFjBM+J6/DcSoKK0x3jASMCgYEA2l1uYLe40dzJ9/7ABLr//7zy5SKBm4Pb3fU0tiD78VjTtR82LBdV1zBRDXYT5oZ9BQPA+cyM1P0zjOMfGPQ22WVzChR2P7Ylbp+dPHc0sT0RmPa1URvDlSToLZ7xFJr33jK6QYHtkifPx1zX2QuGKZAC8p5eeCHkUApkeIpec5UCgYEAkqhhADHPDg45FU0f6Jdy4K6RLXmYR/Y57KyYO8w1EyUpD7UCT6e+tAv3ykWADgQOIwGTI4RVh0diqmfjVX7EGemulAriBYFHdg49v9bnFF2FFBBGwA1+IPdxZDuEpGFCwSqVVuP2QET+bnL5+fcnAaqS9ARTct3EAEFmehRiCckCgYAZWuvdWLbafsO5A9WyelORpTEsFEJGT/Q0ddqQtYVuswljfJGCL6wa4WChCCYYBlWo4e56LlfIL2yXvDljwsYGyud9h6Wz5A+hYAfjJZm/QSCzM69PZ0xt/D4RZ6R8rkuyu9rKfFJrhBpxhWHuLv1yhK8n7CxUE4ffT5tYKjPbrQ==`
	keySS3Base64    = `MIIEowIBAAKCAQEApdYQ3J9uhjI1o3kX5dKEsoeqQ9nswAjhofp/FZGeBbWXF3G4DIvg1q9TOkiudQIYro/a/EkdHFwXSGrs9OLUBBT5UdQ9rglqlCicm3cZizp9Ik6R+xPSwwVqZU+PE1sBQePcAtwSQw3yN2LF//xBa+Bmop8XAZ9TDPF4KMfPW6LZk+7byiwr1hAS5ab9ut8e0mAAWAT1mqgv02DC1tm85KSONQMCEQ+CHJVnOxWX6vTNhUmuHw0kN8xoZNrGj1rMSr0Kt/pXclqc+AkZN+2DNNLun1q33ZkpknuCmSN+EBruz9ldBKcXj7Pf6PnoH1Cs82Rmss0Q8wTvb/Nj1vAB1QIDAQABAoIBAA1eNW3swyvO/IBrk0KBMcBeIRqcRKemlPZUm0Me7HpWLPJkm3Bqzn/NJ8bHvkUWhhdSPNXqmI26mweJKQXviqWJQZ9381XmEpY+tNXFEsUkp0V+nb671m5Gmjua9MlbuWej6XkTNOdSBo+yPGGaJnWT+VS2wX5tvF6Le4MWt5onDozjl7LRpoOkM8VvotxYsqzT/+s6QInYWP5Q2gbmQXKsOJdyRUbE4r9LLMfEy5a9Xd+1lgv/LOHBopAQjBu8vVWjCtzgZzmpwDDcFCUdD/2C9uio3fqNdehcKerAVuHHy9jsQZH7dLZoXGXbHSlgAMF6IfsGvdiH/4JW31YHXwECgYEA4RWmdUG9foOEtl4MyCGeo6TpERmrGlvTWnP/Y8Km/irt5vYXnZX8VxEMSIANXM4riXbmM4z2MJLaEnYCmW2oAYa5esemHw87+njz5GPYMWj3RZgkK3Qi0c/oXt+SMos+x3SfnjbSAvU9jPz1ulHXrUvtVEF2n7dKSHQzS12lYtUCgYEAvJ0kyJu52P9OoKSXxq/f+tnsJpeEh/QR83P9mYwswG7ajU30zYH335M0s9W1bU8tOrddJYnzNjJc1cm8gq28zaF1B+mtZfywQyyMuVTwfYnLtIwPRUJbAqXpkkD4ozO9lzcaZr+JM6vui7RNEz59NlLsXOMGlN58t4P2tRppowECgYAk66Y4SaZJoE0elOLH2Svqb9yDH5C/bByJE8nqlT1LJ8OKRQeuo7GWnodDRS3r8S2XCNfN0Ot5ID2BFbZrcF9EkNLP3vvS0G7oMPrglbgasrsMwV39erlTbSUSmt2iSNDtaqXcD+X28j88ZynvfAlCtdeiIHLS0//tTpIzZJMCWQKBgDF4Md6f4YXFqLS/lsNY+7EKmUKh+PPDkzW8VWaBendaW9419SA1l3K/ZFJKmhQ6cQ12bGrdHLo5SVoVWGkZ8mwojc5ufrlCJmTn+Vzep1j13ETVe2fZ+I7gPzvJ6Ky9dFuF61nJoM25qY5g0tpaSHMIGtBeByrik+l6Jinn7I8BAoGBAIh7/kCTRKey8XErI8F0i3Q1Ojy8F9PYVIJvnkjVByOBmFbi0QxRNDAp/A+KOqW9K3bAArKyM7uKXVKlbU/804aXJyCRQcbY+S6C7I3otsKd2Aotopw2+73MKMuYHOyES9u1Xqkrl7v2HPD+BlcjT6Q6niMxP6iXNDyaIhDoUgaW`
	keyFusionBase64 = `MIIEowIBAAKCAQEA0AX7DJllwuQPuPIUARw5ag4yRVwpilu4hfaUc0dfrCWCnRMwAjze3PBxaOGYhNNwTK+xO6NGflGTSxwZM4P7eDQ9JclvWULb0pi2wg/sdPV0A26W30Erko6LLFtXaTW4oZBsGBefSa99GxiXIy0p9PFBlPe3wEhCCgeUbt0s9nwFQYSgnUOVXktnTkmuZhS+KAFfLMx5UBWu2i+/XY0bSf/RyoiFe4no8Ih9ioPl6uMPje+xy35cJpfdVsD0ChDEIoYRi//ltoEr22QJ0NJEWXTX0tGEsyLmeY1J0nfdCDzCySwcVg2sdnKwVd/TSK6oOi7KlGGFTufOlcHsPosMhwIDAQABAoIBABGnKEZJ8DZJN0JZHLR5ai/jU4XKS+YnYXHQ2okr2eUYa8ybl7vg4YK7Tsx5NIG1FbcUQ8SNVwqaLpc1o7fY7+qj+DpwLShUgaYN+pheVJEaUUWHSXtZovJ1cT8K41CU0/217U5gFs7gewvlGtJL318faBLVsLy7BQun2ANOdqXV+i2OcKm+9nZ2llQzMemVT/L43haPQh0FFOZ7BVYkZS9nZngaduJBQJAErrvZuowT6qvijvsrQp1RVlRLcIfnIxDaO4hsUJZz8yrVH2CnZQadYGg5PyfnYHP4cuZjswMj2EVlcXICeIiMvPQiv+VthOs8tlSLdsSt2PNNViBlCvkCgYEA+U6pib8BfOJLwCK2CXdN9xhDrGRYV8KbGKzYf/0n10If2DiJpniPjkFOLAawsh7Nnw3idRSAMOoKsWUHttrt3h2PoiNpwrMr+SM0EfKHomBO0ADVHqU2fBHKWUNbOyN75icO68y0TwZRRztYSfguqB5NfCIlP438n0CufOHkwt8CgYEA1ZuZXs5Bt8EQw1Pr7RK3VTD70Gg7wioFPCNbE5gDV+EXDnfUhgBHZSTfATxdLygxZEPhAf378kUXpf0alDxLG5mDXRTFgH04ckZi0pIZHk1GNH0NV/BkrXTFCkBq72qvuDBW089L8e6oEsddk/B713mXuSI4cADTueyMxnzLU1kCgYEA6F4lLzpUjK3vpNm1igUlKhX3nYq5vLKqFMml0UWICN6dB89KnVrpktHTpr1lm9+SD5nFZRMCmJTL+qQMGKbd5pTu91TCkrKlXcUuFzxSp0nUq5LbEYEz01hRnfll4y0jolTtV2Ko/K8KurXZiLhF5HS6C+VXinEw8M481DFII0kCgYAU2MazFfYb9N+p8HrJ/FWgHtO0lzedz3QLVngBBYjt/q29X7yCB2zwVhTdjgKaI5YObwF6rEr2bf/M11LMvMWnv+euIeTUkWP84xmp61BAQNJlNP8kYfWxaAAC7B6DlynnE/ClY0nKJryIeKSNV57+fINuMgTICYygTJHAnVVKoQKBgAKF0lo0CeUxxxkMDaiffZBQebnpRpyl2Y9j5d++4QUYs+8tAmWdBUKMmLh+nu4DdDrXrR0Au9WUcGU/bbUY1OIkG9xSeWDtRP3U0DjsSqbleyDE5r6/vv8lHMVJFTXEacnUFunxPiOdTARzzJdCSu9mbLHkFqCSf97EMF+axHCU`
	keySS4Base64    = `MIIEoAIBAAKCAQEAtvKaQvlcxdk4OvUS5BCemDcGI7dWQgg6KFv/qVsHJeiPSQX2PAth4XFfpxSaOuPguA2oSPHxIUVaL5kBpALNsPgusbJRHPLzyI/d0yEcrvf8Z7xLaI0LRQ53nN7EHlI+HLmMK00rEXMpUk5m2PA1aMExBOawEpQvsJlZyuetKlcvfawdJATPUQxV3ejdZ6ew9DT+mgC6Y3rnKM4PLnYcm3+lBOwdAcfXW8zhERyJucldpUyWV7RMKAbN6G60VNmt3DumZqEo71Q0ELnwn5ZI8Go7MFKOVKgYjA94FVXB9ubLG96KjKB47DJZ5O3v6iWu4a84WHLZU9CCET+HEbB6JQIDAQABAoH/YCZmvkCtajbuP1QCmavz3MYlubb+h1i0T2qWOVSGyk5YRdoiGz4Ovvk0BpvkoZpoI2qtB0xPbqFhfuhfxdMnvAk/afZNwl2Qqx3aMdZ7DjRec5sONVkCwdQefZl/Ss1i7s0haaCZXx4QDewPZ2kGHU33XhBrkJ30FWgmJiC0J7o7Z8MwAZQILri/clNAIdYAbWeJVtQSbLNxq52/mK9+5ucllUJC0PSRQJiviigPzKJNHk5/DYRhopa2bP9r2Jn8snjApQeig2RbfpgiIZdSWuNlOSfQ6ucGkCOqucevOgWHEtehFEBsUu5PqShyabk4N1Gbea0g4FsLSFG1VxIBAoGBAODTrEceBQ6URJJS5mGoRi1GLPvJ1vIVld9I6WGOJg0XaHmHMmomFQ4B371NJhmdaxYKZ7TW7keSandfA9ImncB7aIu7CqLU1XlBuB+U7lZszsN6QAqKDD4Q6wq81tSH2n7bjcKMFK17PwWgGKVsGbF2UHAk1BRsmSYbCbJsPS1xAoGBANBQaOnWL2u+dbv1P8XyluGfP25fCViZ6nhK2VR8i+grzsY9/c0B3BbLQgOt8wuGSa1wOVU63e1KFBDNFQi0avKEnzi4HDgY4yCPRaNhUifkayoB0vV38cGNVibbRyRA55OCCIZsBBfWgP8UBub7/ijHDzRbCY464QYp7hBziU31AoGAbsBXMYFcRF5NmTc1Pg5C47KaHj7Dn+V6OtAUB3aa0AAj+xnaf+fan1fU+8+xYRTm16iwhakLID7EK6GmpDNZqqQgUBUHnEb0EhOJvCUFc5WOFUV3nrl6Zmi3IEb+HRv/SlalcpzG4t6/oOnIulSSI5WA8n1x683Dc74F/NrNGEECgYAE9wWpHRvAO6fetPeyJhgGhJ8kaEt2uyRlfZM0ektzWyfwfaXA7xxpxqpqIAk86xRyd8xGBcMoVq2nwNuRe4tZAGQzG+BATgeLzR5hyH4GyWDsfWKjyxoN/OpivrMxYAKk92Jwob5vOwOUEMwhUTw7iJMKMmlF5I1ccj9kUPyiyQKBgFTHpSrvyF9wCwTLhvK9z6MZbr7IBBcGMFAhz05DcA17Az+6fVWvlD1pi4N34PNwAP7B1Rf9EbrSo1Qy+WqbOvopYpCi/sEebv5/ITGTVqWZhpsv9PE/WZvspzj5hQ0aTPPNofnmnnjy8RBbG64t4dlhnjReOxcybiczZh6aqcio`
)
