package main

import (
	"fmt"
	"log"
	"time"

	"github.com/msiglreith/norse-billow"
	"github.com/msiglreith/norse-billow/region"
)

func main() {
	size := 1_000_000
	dt := float32(1.0 / 60.0)

	b := billow.NewBuilder()
	pos := billow.Add[[3]float32](b)
	vel := billow.Add[[3]float32](b)
	mass := billow.Add[float32](b)

	layout, err := b.Finish()
	if err != nil {
		log.Fatal(err)
	}

	bytes, err := layout.SizeFor(size)
	if err != nil {
		log.Fatal(err)
	}

	// Page-aligned memory outside the garbage collector.
	m, err := region.MapAnon(bytes)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	blk := layout.Apply(m.Bytes())

	fmt.Println("--- Layout ---")
	fmt.Println(layout)
	fmt.Println("Particles:", blk.Len())
	fmt.Println()

	positions := pos.Slice(blk)
	velocities := vel.Slice(blk)
	masses := mass.Slice(blk)

	for i := 0; i < size; i++ {
		positions[i] = [3]float32{float32(i), 0, 0}
		velocities[i] = [3]float32{0, 1, 0}
		masses[i] = 1
	}

	fmt.Println("--- Integrate ---")
	start := time.Now()

	for step := 0; step < 60; step++ {
		for i := 0; i < size; i++ {
			positions[i][0] += velocities[i][0] * dt
			positions[i][1] += velocities[i][1] * dt
			positions[i][2] += velocities[i][2] * dt
		}
	}

	fmt.Printf("Seconds: %.3f\n", time.Since(start).Seconds())
	fmt.Printf("Particle 0 at y=%.2f\n", positions[0][1])
}
