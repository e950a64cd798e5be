package main

import (
	"fmt"
	"log"

	"github.com/waveformdb/wavedb/bitvector"
	"github.com/waveformdb/wavedb/logic"
	"github.com/waveformdb/wavedb/wavedb"
)

func main() {
	fmt.Println("Wavedb Demo")
	fmt.Println("===========")

	w, err := wavedb.New()
	if err != nil {
		log.Fatal(err)
	}

	clk, err := w.RegisterVector("top.clk", 1)
	if err != nil {
		log.Fatal(err)
	}

	bus, err := w.RegisterVector("top.cpu.bus", 8)
	if err != nil {
		log.Fatal(err)
	}

	temp, err := w.RegisterReal("top.sensor.temp_c")
	if err != nil {
		log.Fatal(err)
	}

	busValues := []string{"00000000", "0000ZZZZ", "11110000", "XXXXXXXX"}
	for i, ts := range []uint64{0, 10, 20, 30} {
		if err := w.InsertTimestamp(ts); err != nil {
			log.Fatal(err)
		}

		bit := bitvector.NewZeroBit()
		if i%2 == 1 {
			bit = bitvector.NewOneBit()
		}

		if err := w.UpdateVector(clk, bit); err != nil {
			log.Fatal(err)
		}

		if err := w.UpdateVector(bus, bitvector.FromASCIIFourState([]byte(busValues[i]))); err != nil {
			log.Fatal(err)
		}

		if err := w.UpdateReal(temp, 25.0+float64(i)*0.5); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("Timestamps recorded: %d\n", w.TimestampsCount())
	fmt.Printf("Block bytes: %d, payload bytes: %d\n", w.BlockBytes(), w.PayloadBytes())

	// SearchValue takes an ordinal position in the global timestamp array,
	// so a query against a wall-clock time first resolves that position
	// with SearchTimestamp.
	ordinal, ok := w.SearchTimestamp(15)
	if !ok {
		log.Fatal("expected a recorded timestamp at or before clock time 15")
	}

	result, ok := w.SearchValue(bus, uint64(ordinal))
	if !ok {
		log.Fatal("expected a bus value at or before that ordinal")
	}

	fmt.Printf("bus at or before clock time 15: %s (high-Z: %v)\n", result.Vector.ToStringRadix(logic.RadixHexadecimal), result.IsHighImpedance())

	ordinal, ok = w.SearchTimestamp(30)
	if !ok {
		log.Fatal("expected a recorded timestamp at or before clock time 30")
	}

	tempResult, ok := w.SearchValue(temp, uint64(ordinal))
	if !ok {
		log.Fatal("expected a temperature reading at that ordinal")
	}

	fmt.Printf("temp at clock time 30: %.1fC\n", tempResult.Real)

	start, end := w.TimestampRange()
	fmt.Printf("timestamp range: [%d, %d]\n", start, end)

	shards := w.Shard(2)
	merged, err := wavedb.Unshard(shards)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("round-tripped through %d shards: %d timestamps preserved\n", len(shards), merged.TimestampsCount())

	busSignal, _ := w.GetVectorSignal(bus)
	cursor := busSignal.History().NewCursor()
	for {
		idx, more := cursor.Next()
		if !more {
			break
		}

		fmt.Printf("bus change at ts index %d -> value index %d\n", idx.TimestampIndex, idx.ValueIndex)
	}
}
