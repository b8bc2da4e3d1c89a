package main

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"log"
	"sync"
	"time"

	"github.com/ngageoint/six-library-sub016/imageio"
	"github.com/ngageoint/six-library-sub016/record"
	"github.com/silverisntgold/randshiro"
)

const (
	nbpr       = 8  // blocks per row
	nbpc       = 8  // blocks per column
	nppbh      = 32 // pixels per block, horizontal
	nppbv      = 32 // pixels per block, vertical
	numBands   = 3
	queueDepth = 20 // concurrent readers/writers
)

type block struct {
	row, col int
	crc      uint32
}

func main() {
	rng := randshiro.New128pp()
	randReader := &randshiroReader{rng: rng}

	seg, err := newImageSegment()
	if err != nil {
		log.Fatal(err)
	}
	grid := imageio.NewGrid(seg.Image)

	var blocks []block
	for row := 0; row < nbpc; row++ {
		for col := 0; col < nbpr; col++ {
			blocks = append(blocks, block{row: row, col: col})
		}
	}

	w, err := imageio.NewWriter(seg)
	if err != nil {
		log.Fatal(err)
	}

	blockSize := grid.BlockByteSize()

	start := time.Now()

	var wg sync.WaitGroup
	writeCh := make(chan *block)
	for i := 0; i < queueDepth; i++ {
		go writeWorker(&wg, writeCh, randReader, w, blockSize)
	}
	for i := range blocks {
		wg.Add(1)
		writeCh <- &blocks[i]
	}
	close(writeCh)
	wg.Wait()

	if err := w.Finish(); err != nil {
		log.Fatal(err)
	}

	r, err := imageio.NewReader(seg, nil, imageio.DefaultBlockCacheSize)
	if err != nil {
		log.Fatal(err)
	}

	readCh := make(chan *block)
	for i := 0; i < queueDepth; i++ {
		go readWorker(&wg, readCh, r)
	}
	for i := range blocks {
		wg.Add(1)
		readCh <- &blocks[i]
	}
	close(readCh)
	wg.Wait()

	elapsed := time.Since(start)

	ops := float64(2 * len(blocks))
	iops := ops / elapsed.Seconds()
	throughput := iops * float64(blockSize) / (1024 * 1024)

	log.Printf("IOPS: %.2f, Throughput: %.2f MB/s\n", iops, throughput)
}

func newImageSegment() (*record.Segment, error) {
	h, err := record.NewImageSubheader(record.Version21)
	if err != nil {
		return nil, err
	}
	h.ImageID = "BENCH0001"
	h.Rows = nbpc * nppbv
	h.Cols = nbpr * nppbh
	h.PVType = record.PVTypeInt
	h.Representation = record.RepMulti
	h.ActualBPP = 8
	h.NBPP = 8
	h.Mode = record.ModeP
	h.NBPR = nbpr
	h.NBPC = nbpc
	h.NPPBH = nppbh
	h.NPPBV = nppbv
	h.Compression = record.CompNone
	for i := 0; i < numBands; i++ {
		h.Bands = append(h.Bands, record.BandInfo{Representation: fmt.Sprintf("%d", i)})
	}
	return &record.Segment{Kind: record.KindImage, Image: h}, nil
}

func writeWorker(jobCompleted *sync.WaitGroup, jobCh <-chan *block, randReader *randshiroReader, w *imageio.Writer, blockSize int) {
	for b := range jobCh {
		data := make([]byte, blockSize)
		randReader.Read(data)
		// ReadBlock(0, ...) returns only band 0's samples of this
		// pixel-interleaved 8-bit block, so the CRC covers just those bytes.
		band0 := make([]byte, 0, blockSize/numBands)
		for i := 0; i < len(data); i += numBands {
			band0 = append(band0, data[i])
		}
		b.crc = crc32.ChecksumIEEE(band0)
		if err := w.WriteBlock(0, b.row, b.col, data); err != nil {
			log.Fatal(err)
		}
		jobCompleted.Done()
	}
}

func readWorker(jobCompleted *sync.WaitGroup, jobCh <-chan *block, r *imageio.Reader) {
	for b := range jobCh {
		data, err := r.ReadBlock(0, b.row, b.col)
		if err != nil {
			log.Fatal(err)
		}
		if crc := crc32.ChecksumIEEE(data); crc != b.crc {
			log.Fatalf("CRC mismatch at block (%d,%d): %x != %x\n", b.row, b.col, crc, b.crc)
		}
		jobCompleted.Done()
	}
}

type randshiroReader struct {
	rng *randshiro.Gen
}

func (r *randshiroReader) Read(p []byte) (int, error) {
	n := 0
	for len(p[n:]) >= 8 {
		binary.LittleEndian.PutUint64(p[n:], r.rng.Uint64())
		n += 8
	}
	if n < len(p) {
		remainingBytes := r.rng.Uint64()
		for i := n; i < len(p); i++ {
			p[i] = byte(remainingBytes)
			remainingBytes >>= 8
		}
		n = len(p)
	}
	return n, nil
}
